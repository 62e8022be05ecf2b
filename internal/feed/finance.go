package feed

import (
	"fmt"
	"sort"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"StockScout/internal/model"
)

// FinanceFetcher implements Fetcher on top of the finance-go chart client.
type FinanceFetcher struct{}

func NewFinanceFetcher() *FinanceFetcher { return &FinanceFetcher{} }

func (f *FinanceFetcher) Name() string { return "finance-go" }

func (f *FinanceFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	end := time.Now()
	// Calendar buffer: a year holds roughly 252 trading days, so double
	// the requested count covers weekends and holidays.
	start := end.AddDate(0, 0, -days*2)

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	var bars []model.OHLCV
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(int64(b.Timestamp), 0),
			Open:   b.Open.InexactFloat64(),
			High:   b.High.InexactFloat64(),
			Low:    b.Low.InexactFloat64(),
			Close:  b.Close.InexactFloat64(),
			Volume: float64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("finance-go chart %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("finance-go %s: %w", symbol, ErrNoData)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}
