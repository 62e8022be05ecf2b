package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the daily price history for one ticker, ordered by
// date ascending.
type PriceSeries struct {
	Ticker string
	Bars   []OHLCV
}

// NewPriceSeries wraps bars in a PriceSeries. Bars are assumed to already
// be in chronological order; fetchers sort before returning.
func NewPriceSeries(ticker string, bars []OHLCV) *PriceSeries {
	return &PriceSeries{Ticker: ticker, Bars: bars}
}

// Len returns the number of observations in the series.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// Latest returns the most recent bar. ok is false for an empty series.
func (s *PriceSeries) Latest() (bar OHLCV, ok bool) {
	if len(s.Bars) == 0 {
		return OHLCV{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Closes returns all closing prices in date order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// RecentCloses returns the closing prices of the most recent n bars, or
// of the whole series when it holds fewer than n.
func (s *PriceSeries) RecentCloses(n int) []float64 {
	closes := s.Closes()
	if n < len(closes) {
		return closes[len(closes)-n:]
	}
	return closes
}
