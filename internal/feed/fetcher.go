package feed

import (
	"errors"

	"StockScout/internal/model"
)

// ErrNoData indicates the ticker resolved but no observations came back
// for the requested range. Callers can tell this apart from transport or
// decoding faults with errors.Is.
var ErrNoData = errors.New("no price data available")

// Fetcher defines the interface for retrieving daily price history.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
