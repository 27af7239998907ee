package forecast

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TradingDaysPerYear converts a year horizon into the trading-day
// units the models are trained on.
const TradingDaysPerYear = 252

// Confidence is a fixed placeholder; the model artifacts carry no
// error estimate.
const Confidence = 90

var (
	// ErrInvalidYear is returned for target years at or before the
	// current year.
	ErrInvalidYear = errors.New("forecast: target year must be in the future")

	// ErrPredictionFailed is the opaque error surfaced to callers when
	// the model itself fails; the cause is logged server-side only.
	ErrPredictionFailed = errors.New("forecast: prediction failed")
)

// PriceSource supplies the latest known closing price for a ticker.
type PriceSource interface {
	LatestPrice(ctx context.Context, ticker string) (float64, error)
}

// Result is one prediction. It is transient; it is only persisted when
// the caller explicitly saves it to a portfolio.
type Result struct {
	Ticker         string         `json:"ticker"`
	Year           int            `json:"year"`
	CurrentPrice   float64        `json:"currentPrice"`
	PredictedPrice float64        `json:"predictedPrice"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     int            `json:"confidence"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Service runs the prediction pipeline: model lookup, horizon
// prediction, current-price fetch, recommendation.
type Service struct {
	registry *Registry
	prices   PriceSource
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(registry *Registry, prices PriceSource, log zerolog.Logger) *Service {
	return &Service{
		registry: registry,
		prices:   prices,
		log:      log.With().Str("component", "forecast").Logger(),
		now:      time.Now,
	}
}

// Predict produces a Result for a ticker and target year. It is
// read-only: no state changes regardless of outcome.
func (s *Service) Predict(ctx context.Context, ticker string, year int) (*Result, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	now := s.now()

	if year <= now.Year() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}

	model, err := s.registry.Lookup(ticker)
	if err != nil {
		return nil, err
	}

	horizon := (year - now.Year()) * TradingDaysPerYear
	predicted, err := model.Predict(horizon)
	if err != nil {
		s.log.Error().Err(err).Str("ticker", ticker).Int("year", year).Msg("model prediction failed")
		return nil, ErrPredictionFailed
	}

	current, err := s.prices.LatestPrice(ctx, ticker)
	if err != nil {
		return nil, err
	}

	recommendation, err := Recommend(current, predicted)
	if err != nil {
		s.log.Error().Err(err).Str("ticker", ticker).Float64("current", current).Msg("recommendation failed")
		return nil, ErrPredictionFailed
	}

	return &Result{
		Ticker:         ticker,
		Year:           year,
		CurrentPrice:   round2(current),
		PredictedPrice: round2(predicted),
		Recommendation: recommendation,
		Confidence:     Confidence,
		CreatedAt:      now.UTC(),
	}, nil
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
