package forecast

import "errors"

// Recommendation is a discrete trading label derived from the
// percentage change between current and predicted price.
type Recommendation string

const (
	StrongBuy Recommendation = "Strong Buy"
	Buy       Recommendation = "Buy"
	Hold      Recommendation = "Hold"
	Sell      Recommendation = "Sell"
)

// ErrInvalidPrice is returned when the current price is zero or
// negative, which would make the percentage change undefined.
var ErrInvalidPrice = errors.New("forecast: current price must be positive")

// Upper thresholds are strict, the lower one is inclusive: a change of
// exactly 0.05 is Hold, not Buy, and exactly -0.05 is Hold, not Sell.
const (
	strongBuyThreshold = 0.15
	buyThreshold       = 0.05
	holdThreshold      = -0.05
)

// Recommend maps a current and predicted price to a label.
func Recommend(current, predicted float64) (Recommendation, error) {
	if current <= 0 {
		return "", ErrInvalidPrice
	}

	change := (predicted - current) / current
	switch {
	case change > strongBuyThreshold:
		return StrongBuy, nil
	case change > buyThreshold:
		return Buy, nil
	case change >= holdThreshold:
		return Hold, nil
	default:
		return Sell, nil
	}
}
