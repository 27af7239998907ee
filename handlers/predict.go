package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"stock-predictor/forecast"
)

type PredictHandler struct {
	forecast *forecast.Service
	log      zerolog.Logger
}

func NewPredictHandler(forecastService *forecast.Service, log zerolog.Logger) *PredictHandler {
	return &PredictHandler{forecast: forecastService, log: log}
}

// Predict runs the full pipeline and returns the prediction together
// with the current price and recommendation.
func (h *PredictHandler) Predict(c *gin.Context) {
	ticker := c.Query("ticker")
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticker query parameter is required"})
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year query parameter must be an integer"})
		return
	}

	result, err := h.forecast.Predict(c.Request.Context(), ticker, year)
	if err != nil {
		respondPredictionError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
