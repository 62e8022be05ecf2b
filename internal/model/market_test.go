package model

import (
	"reflect"
	"testing"
)

func TestPriceSeriesAccessors(t *testing.T) {
	empty := NewPriceSeries("X", nil)
	if _, ok := empty.Latest(); ok {
		t.Error("Latest on an empty series must report ok=false")
	}
	if got := empty.RecentCloses(5); len(got) != 0 {
		t.Errorf("RecentCloses on empty series = %v", got)
	}

	bars := []OHLCV{{Close: 1}, {Close: 2}, {Close: 3}}
	s := NewPriceSeries("X", bars)

	latest, ok := s.Latest()
	if !ok || latest.Close != 3 {
		t.Errorf("Latest = %v (ok=%v), want close 3", latest, ok)
	}
	if got := s.RecentCloses(2); !reflect.DeepEqual(got, []float64{2, 3}) {
		t.Errorf("RecentCloses(2) = %v, want [2 3]", got)
	}
	if got := s.RecentCloses(10); !reflect.DeepEqual(got, []float64{1, 2, 3}) {
		t.Errorf("RecentCloses(10) = %v, want the whole series", got)
	}
}
