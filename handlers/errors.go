package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"stock-predictor/forecast"
	"stock-predictor/marketdata"
)

// respondPredictionError maps pipeline errors to HTTP responses.
// Anything untyped is logged with full detail and answered with an
// opaque body.
func respondPredictionError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, forecast.ErrInvalidYear):
		c.JSON(http.StatusBadRequest, gin.H{"error": "target year must be in the future"})
	case errors.Is(err, forecast.ErrModelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no trained model for ticker"})
	case errors.Is(err, marketdata.ErrNoPriceData):
		c.JSON(http.StatusNotFound, gin.H{"error": "no price data for ticker"})
	case errors.Is(err, forecast.ErrPredictionFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("prediction pipeline error")
		c.JSON(http.StatusBadGateway, gin.H{"error": "market data unavailable"})
	}
}
