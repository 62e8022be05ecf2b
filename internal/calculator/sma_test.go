package calculator

import (
	"math"
	"testing"

	"StockScout/internal/model"
)

func TestSMA(t *testing.T) {
	tests := []struct {
		name    string
		prices  []float64
		period  int
		want    float64
		wantErr bool
	}{
		{"simple", []float64{1, 2, 3, 4}, 4, 2.5, false},
		{"uses most recent", []float64{100, 100, 1, 2, 3}, 3, 2, false},
		{"single point", []float64{7}, 1, 7, false},
		{"zero period", []float64{1, 2, 3}, 0, 0, true},
		{"negative period", []float64{1, 2, 3}, -5, 0, true},
		{"insufficient data", []float64{1, 2}, 3, 0, true},
		{"empty insufficient", nil, 1, 0, true},
	}
	for _, tt := range tests {
		got, err := SMA(tt.prices, tt.period)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil && math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: SMA = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTrailingAverage(t *testing.T) {
	bars := make([]model.OHLCV, 5)
	for i := range bars {
		bars[i].Close = float64(i + 1) // 1..5
	}
	series := model.NewPriceSeries("X", bars)

	got, err := TrailingAverage(series, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4 { // mean of 3, 4, 5
		t.Errorf("TrailingAverage = %v, want 4", got)
	}

	if _, err := TrailingAverage(series, 6); err == nil {
		t.Error("expected error for window larger than series")
	}
}
