package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"stock-predictor/forecast"
	"stock-predictor/middleware"
	"stock-predictor/models"
	"stock-predictor/store"
)

type PortfolioHandler struct {
	portfolios *store.PortfolioStore
	forecast   *forecast.Service
	log        zerolog.Logger
}

func NewPortfolioHandler(portfolios *store.PortfolioStore, forecastService *forecast.Service, log zerolog.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios, forecast: forecastService, log: log}
}

type PortfolioEntry struct {
	ID             uint      `json:"id"`
	Ticker         string    `json:"ticker"`
	Year           int       `json:"year"`
	PredictedPrice float64   `json:"predicted_price"`
	CreatedAt      time.Time `json:"created_at"`
}

func toEntry(m *models.Portfolio) PortfolioEntry {
	return PortfolioEntry{
		ID:             m.ID,
		Ticker:         m.Ticker,
		Year:           m.Year,
		PredictedPrice: m.PredictedPrice,
		CreatedAt:      m.CreatedAt,
	}
}

// Add runs the prediction pipeline and saves the result for the
// authenticated user. A failed prediction saves nothing.
func (h *PortfolioHandler) Add(c *gin.Context) {
	userID := middleware.UserID(c)

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

	entry, err := h.portfolios.Add(c.Request.Context(), userID, result.Ticker, result.Year, result.PredictedPrice)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("failed to save portfolio entry")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save prediction"})
		return
	}

	c.JSON(http.StatusCreated, toEntry(entry))
}

// List returns the authenticated user's saved predictions in the order
// they were saved.
func (h *PortfolioHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	entries, err := h.portfolios.List(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("failed to list portfolio")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list portfolio"})
		return
	}

	out := make([]PortfolioEntry, 0, len(entries))
	for i := range entries {
		out = append(out, toEntry(&entries[i]))
	}
	c.JSON(http.StatusOK, out)
}
