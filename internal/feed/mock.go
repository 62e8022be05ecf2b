package feed

import (
	"time"

	"StockScout/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.OHLCV
	Errs  map[string]error
	Calls []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	m.Calls = append(m.Calls, symbol)
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return GenerateBars(m.Price, days), nil
}

// GenerateBars builds a synthetic daily series drifting around basePrice.
func GenerateBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
