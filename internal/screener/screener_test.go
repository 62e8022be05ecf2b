package screener

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"StockScout/internal/feed"
	"StockScout/internal/model"
)

// captureSink records every diagnostic for assertions.
type captureSink struct {
	skipped map[string]string
	faults  map[string]error
	bullish []string
}

func newCaptureSink() *captureSink {
	return &captureSink{skipped: map[string]string{}, faults: map[string]error{}}
}

func (c *captureSink) Scanning(_ int) {}

func (c *captureSink) Analyzing(_ string) {}

func (c *captureSink) Done(_ int) {}

func (c *captureSink) Skipped(t, r string) { c.skipped[t] = r }

func (c *captureSink) Fault(t string, err error) { c.faults[t] = err }
func (c *captureSink) Bullish(t string, _, _ float64) {
	c.bullish = append(c.bullish, t)
}

// constantBars builds n daily bars all closing at price.
func constantBars(price float64, n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := 0; i < n; i++ {
		bars[i] = model.OHLCV{
			Time:  time.Now().AddDate(0, 0, -(n - i)),
			Open:  price,
			High:  price,
			Low:   price,
			Close: price,
		}
	}
	return bars
}

// barsWithLast builds n constant bars then replaces the final close.
func barsWithLast(price float64, n int, last float64) []model.OHLCV {
	bars := constantBars(price, n)
	bars[n-1].Close = last
	return bars
}

func TestScan_EmptyUniverse(t *testing.T) {
	mock := &feed.MockFetcher{Price: 100}
	s := New(mock, 200, nil)

	result, err := s.Scan(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Matches) != 0 || result.Scanned != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("feed must not be invoked for an empty universe, got calls %v", mock.Calls)
	}
}

func TestScan_InvalidWindow(t *testing.T) {
	for _, window := range []int{0, -1, -200} {
		s := New(&feed.MockFetcher{Price: 100}, window, nil)
		result, err := s.Scan([]string{"AAPL"})
		if !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("window %d: expected ErrInvalidWindow, got %v", window, err)
		}
		if result != nil {
			t.Errorf("window %d: expected no result, got %+v", window, result)
		}
	}
}

func TestScan_SkipsFailuresAndContinues(t *testing.T) {
	mock := &feed.MockFetcher{
		Bars: map[string][]model.OHLCV{
			"EMPTY": {},
			"GOOD":  barsWithLast(100, 200, 150),
		},
		Errs: map[string]error{
			"DOWN":  fmt.Errorf("GONE: %w", feed.ErrNoData),
			"FAULT": errors.New("connection reset"),
		},
	}
	sink := newCaptureSink()
	s := New(mock, 200, sink)

	result, err := s.Scan([]string{"DOWN", "EMPTY", "FAULT", "GOOD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Tickers(); !reflect.DeepEqual(got, []string{"GOOD"}) {
		t.Errorf("expected [GOOD], got %v", got)
	}
	if result.Skipped != 3 {
		t.Errorf("expected 3 skipped, got %d", result.Skipped)
	}

	// "no data" goes to Skipped, an unexpected fault goes to Fault.
	if _, ok := sink.skipped["DOWN"]; !ok {
		t.Error("expected DOWN to be reported as skipped (no data)")
	}
	if _, ok := sink.faults["FAULT"]; !ok {
		t.Error("expected FAULT to be reported as a fault")
	}
	if _, ok := sink.faults["DOWN"]; ok {
		t.Error("no-data skip must not be reported as a fault")
	}
}

func TestScan_InsufficientHistorySkipped(t *testing.T) {
	// Partial windows are skipped, never averaged over fewer points.
	mock := &feed.MockFetcher{
		Bars: map[string][]model.OHLCV{"NEW": barsWithLast(100, 5, 500)},
	}
	sink := newCaptureSink()
	s := New(mock, 200, sink)

	result, err := s.Scan([]string{"NEW"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Matches) != 0 {
		t.Errorf("ticker with 5 of 200 observations must be skipped, got %v", result.Tickers())
	}
	if reason, ok := sink.skipped["NEW"]; !ok || reason != "only 5 of 200 observations" {
		t.Errorf("unexpected skip diagnostic: %q (present=%v)", reason, ok)
	}
}

func TestScan_StrictInequalityBoundary(t *testing.T) {
	const p = 100.0
	const eps = 0.5
	tests := []struct {
		name    string
		last    float64
		matched bool
	}{
		{"above", p + eps, true},
		{"below", p - eps, false},
		{"equal", p, false},
	}
	for _, tt := range tests {
		bars := barsWithLast(p, 200, tt.last)
		// Recompute: the final close shifts the average too.
		avg := (p*199 + tt.last) / 200
		mock := &feed.MockFetcher{Bars: map[string][]model.OHLCV{"X": bars}}
		s := New(mock, 200, nil)

		result, err := s.Scan([]string{"X"})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		matched := len(result.Matches) == 1
		wantMatched := tt.last > avg
		if wantMatched != tt.matched {
			t.Fatalf("%s: test fixture inconsistent (last=%v avg=%v)", tt.name, tt.last, avg)
		}
		if matched != tt.matched {
			t.Errorf("%s: matched=%v, want %v (last=%v avg=%v)", tt.name, matched, tt.matched, tt.last, avg)
		}
	}
}

func TestScan_ConcreteScenario(t *testing.T) {
	// 199 closes at 100.0 and a final close at 150.0: the 200-day
	// average is 100.25 and the ticker qualifies.
	mock := &feed.MockFetcher{
		Bars: map[string][]model.OHLCV{"SPY": barsWithLast(100.0, 200, 150.0)},
	}
	s := New(mock, 200, nil)

	result, err := s.Scan([]string{"SPY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Matches) != 1 {
		t.Fatalf("expected SPY to qualify, got %v", result.Tickers())
	}
	m := result.Matches[0]
	if math.Abs(m.Average-100.25) > 1e-9 {
		t.Errorf("expected trailing average 100.25, got %v", m.Average)
	}
	if m.LastClose != 150.0 {
		t.Errorf("expected last close 150.0, got %v", m.LastClose)
	}
}

func TestScan_OrderPreserved(t *testing.T) {
	bearish := barsWithLast(100, 200, 90)
	bullish := barsWithLast(100, 200, 110)
	mock := &feed.MockFetcher{
		Bars: map[string][]model.OHLCV{"A": bearish, "B": bullish, "C": bearish},
	}
	s := New(mock, 200, nil)

	result, err := s.Scan([]string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Tickers(); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("expected exactly [B], got %v", got)
	}

	mock2 := &feed.MockFetcher{
		Bars: map[string][]model.OHLCV{"A": bullish, "B": bearish, "C": bullish},
	}
	result2, err := New(mock2, 200, nil).Scan([]string{"A", "B", "C"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result2.Tickers(); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Errorf("expected [A C] in encounter order, got %v", got)
	}
}

func TestScan_Idempotent(t *testing.T) {
	mock := &feed.MockFetcher{
		Bars: map[string][]model.OHLCV{
			"A": barsWithLast(100, 200, 110),
			"B": barsWithLast(100, 200, 90),
		},
	}
	s := New(mock, 200, nil)

	first, err := s.Scan([]string{"A", "B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Scan([]string{"A", "B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first.Tickers(), second.Tickers()) {
		t.Errorf("scan not idempotent: %v then %v", first.Tickers(), second.Tickers())
	}
}

func TestScan_DuplicateTickersEvaluatedEachTime(t *testing.T) {
	mock := &feed.MockFetcher{
		Bars: map[string][]model.OHLCV{"A": barsWithLast(100, 200, 110)},
	}
	s := New(mock, 200, nil)

	result, err := s.Scan([]string{"A", "A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result.Tickers(); !reflect.DeepEqual(got, []string{"A", "A"}) {
		t.Errorf("duplicates are evaluated independently, got %v", got)
	}
	if len(mock.Calls) != 2 {
		t.Errorf("expected 2 fetches, got %d", len(mock.Calls))
	}
}
