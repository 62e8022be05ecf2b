package model

// DefaultWindow is the trailing-average length used when none is configured.
const DefaultWindow = 200

// Match records one ticker that passed the screen.
type Match struct {
	Ticker    string
	LastClose float64
	Average   float64
}

// ScanResult is the outcome of one screening pass. Matches preserve the
// encounter order of the input tickers.
type ScanResult struct {
	Matches []Match
	Scanned int
	Skipped int
}

// Tickers returns the matched tickers in encounter order.
func (r *ScanResult) Tickers() []string {
	out := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Ticker
	}
	return out
}
