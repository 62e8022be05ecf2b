package screener

import (
	"errors"
	"fmt"

	"StockScout/internal/calculator"
	"StockScout/internal/feed"
	"StockScout/internal/model"
	"StockScout/internal/reporter"
)

// ErrInvalidWindow is returned when the trailing-average window is not a
// positive number of observations. It aborts the scan before any ticker
// is processed.
var ErrInvalidWindow = errors.New("window must be a positive number of observations")

// Screener flags tickers whose latest daily close is above the trailing
// simple moving average of their closes.
type Screener struct {
	Feed   feed.Fetcher
	Window int
	Sink   reporter.Sink
}

// New creates a Screener. A nil sink disables diagnostics.
func New(f feed.Fetcher, window int, sink reporter.Sink) *Screener {
	if sink == nil {
		sink = reporter.NewNoopSink()
	}
	return &Screener{Feed: f, Window: window, Sink: sink}
}

// Scan evaluates each ticker in order and returns those whose latest
// close exceeds the trailing average, preserving encounter order.
//
// Tickers whose history cannot be fetched, comes back empty, or holds
// fewer observations than the window are skipped with a diagnostic; a
// failure on one ticker never aborts the rest of the scan. Only an
// invalid window aborts the whole call, before any fetch happens.
func (s *Screener) Scan(tickers []string) (*model.ScanResult, error) {
	if s.Window <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidWindow, s.Window)
	}

	result := &model.ScanResult{}
	s.Sink.Scanning(len(tickers))

	for _, ticker := range tickers {
		result.Scanned++
		s.Sink.Analyzing(ticker)

		bars, err := s.Feed.FetchDailyBars(ticker, s.Window)
		if err != nil {
			// "no data" and unexpected faults skip the same way but are
			// reported separately so operators can tell them apart.
			if errors.Is(err, feed.ErrNoData) {
				s.Sink.Skipped(ticker, "no data available")
			} else {
				s.Sink.Fault(ticker, err)
			}
			result.Skipped++
			continue
		}

		series := model.NewPriceSeries(ticker, bars)
		if series.Len() == 0 {
			s.Sink.Skipped(ticker, "empty series")
			result.Skipped++
			continue
		}
		if series.Len() < s.Window {
			// Partial windows are never averaged; see DESIGN.md.
			s.Sink.Skipped(ticker, fmt.Sprintf("only %d of %d observations", series.Len(), s.Window))
			result.Skipped++
			continue
		}

		average, err := calculator.TrailingAverage(series, s.Window)
		if err != nil {
			s.Sink.Fault(ticker, err)
			result.Skipped++
			continue
		}

		latest, _ := series.Latest()
		if latest.Close > average {
			result.Matches = append(result.Matches, model.Match{
				Ticker:    ticker,
				LastClose: latest.Close,
				Average:   average,
			})
			s.Sink.Bullish(ticker, latest.Close, average)
		}
	}

	s.Sink.Done(len(result.Matches))
	return result, nil
}
