package calculator

import (
	"errors"

	"StockScout/internal/model"
)

// SMA computes the simple moving average of the given prices over the
// specified period, using the most recent `period` values.
func SMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// TrailingAverage returns the SMA of the most recent `window` closes of
// the series. It fails rather than averaging over a partial window.
func TrailingAverage(series *model.PriceSeries, window int) (float64, error) {
	return SMA(series.Closes(), window)
}
