package forecast

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"stock-predictor/marketdata"
)

// Fit runs an ordinary least-squares regression of closing price over
// the training day index and packages the result as an artifact. The
// series must be in chronological order.
func Fit(ticker string, points []marketdata.PricePoint, trainedAt time.Time) (*Artifact, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("fit %s: need at least 2 points, got %d", ticker, len(points))
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Price
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	return &Artifact{
		Ticker:    ticker,
		Intercept: intercept,
		Slope:     slope,
		LastIndex: len(points) - 1,
		Samples:   len(points),
		TrainedAt: trainedAt.UTC(),
	}, nil
}
