package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"stock-predictor/forecast"
	"stock-predictor/marketdata"
	"stock-predictor/models"
)

type StocksHandler struct {
	db       *gorm.DB
	forecast *forecast.Service
	prices   *marketdata.PriceService
	log      zerolog.Logger
}

func NewStocksHandler(db *gorm.DB, forecastService *forecast.Service, prices *marketdata.PriceService, log zerolog.Logger) *StocksHandler {
	return &StocksHandler{db: db, forecast: forecastService, prices: prices, log: log}
}

// ListCompanies serves the static company list.
func (h *StocksHandler) ListCompanies(c *gin.Context) {
	var companies []models.Company
	if err := h.db.WithContext(c.Request.Context()).Order("ticker asc").Find(&companies).Error; err != nil {
		h.log.Error().Err(err).Msg("failed to list companies")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list companies"})
		return
	}
	c.JSON(http.StatusOK, companies)
}

type PredictInput struct {
	Ticker string `json:"ticker" binding:"required"`
	Year   int    `json:"year" binding:"required"`
}

type PredictPriceResponse struct {
	Ticker         string  `json:"ticker"`
	Year           int     `json:"year"`
	PredictedPrice float64 `json:"predicted_price"`
}

// Predict returns just the predicted price for a ticker/year pair.
func (h *StocksHandler) Predict(c *gin.Context) {
	var input PredictInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticker and year are required"})
		return
	}

	result, err := h.forecast.Predict(c.Request.Context(), input.Ticker, input.Year)
	if err != nil {
		respondPredictionError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, PredictPriceResponse{
		Ticker:         result.Ticker,
		Year:           result.Year,
		PredictedPrice: result.PredictedPrice,
	})
}

type HistoryResponse struct {
	Ticker  string                  `json:"ticker"`
	History []marketdata.PricePoint `json:"history"`
}

// History serves the daily close series for a ticker.
func (h *StocksHandler) History(c *gin.Context) {
	ticker := c.Param("ticker")

	points, err := h.prices.History(c.Request.Context(), ticker)
	if err != nil {
		respondPredictionError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{Ticker: ticker, History: points})
}
