package forecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-predictor/marketdata"
)

type stubModel struct {
	predicted float64
	err       error
	horizon   int
}

func (m *stubModel) Predict(horizonDays int) (float64, error) {
	m.horizon = horizonDays
	return m.predicted, m.err
}

type stubPrices struct {
	price float64
	err   error
}

func (p *stubPrices) LatestPrice(context.Context, string) (float64, error) {
	return p.price, p.err
}

func newTestService(model Model, prices PriceSource) *Service {
	svc := NewService(NewRegistry(map[string]Model{"AAPL": model}), prices, zerolog.Nop())
	svc.now = func() time.Time {
		return time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestPredictPipeline(t *testing.T) {
	model := &stubModel{predicted: 120.456}
	svc := newTestService(model, &stubPrices{price: 100.123})

	result, err := svc.Predict(context.Background(), " aapl ", 2027)
	require.NoError(t, err)

	// 2 years out, in trading days.
	assert.Equal(t, 2*TradingDaysPerYear, model.horizon)

	assert.Equal(t, "AAPL", result.Ticker)
	assert.Equal(t, 2027, result.Year)
	assert.Equal(t, 100.12, result.CurrentPrice)
	assert.Equal(t, 120.46, result.PredictedPrice)
	assert.Equal(t, StrongBuy, result.Recommendation)
	assert.Equal(t, Confidence, result.Confidence)
	assert.Equal(t, time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC), result.CreatedAt)
}

func TestPredictRejectsPastAndCurrentYears(t *testing.T) {
	svc := newTestService(&stubModel{predicted: 100}, &stubPrices{price: 100})

	for _, year := range []int{2020, 2024, 2025} {
		_, err := svc.Predict(context.Background(), "AAPL", year)
		assert.ErrorIs(t, err, ErrInvalidYear, "year %d", year)
	}
}

func TestPredictUnknownTicker(t *testing.T) {
	svc := newTestService(&stubModel{predicted: 100}, &stubPrices{price: 100})

	_, err := svc.Predict(context.Background(), "MSFT", 2027)
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestPredictModelFailureIsOpaque(t *testing.T) {
	cause := errors.New("matrix is singular")
	svc := newTestService(&stubModel{err: cause}, &stubPrices{price: 100})

	_, err := svc.Predict(context.Background(), "AAPL", 2027)
	require.ErrorIs(t, err, ErrPredictionFailed)
	assert.NotContains(t, err.Error(), cause.Error())
}

func TestPredictUpstreamFailure(t *testing.T) {
	svc := newTestService(&stubModel{predicted: 100}, &stubPrices{err: marketdata.ErrNoPriceData})

	_, err := svc.Predict(context.Background(), "AAPL", 2027)
	assert.ErrorIs(t, err, marketdata.ErrNoPriceData)
}

func TestPredictZeroCurrentPrice(t *testing.T) {
	svc := newTestService(&stubModel{predicted: 100}, &stubPrices{price: 0})

	_, err := svc.Predict(context.Background(), "AAPL", 2027)
	assert.ErrorIs(t, err, ErrPredictionFailed)
}
