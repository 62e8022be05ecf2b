package universe

// DefaultPool is the built-in large-cap scan universe used when nothing
// else is configured.
var DefaultPool = []string{"AAPL", "GOOGL", "MSFT", "AMZN", "NVDA", "TSLA", "META", "JPM", "V", "JNJ"}

// Source produces the ordered ticker universe for a scan.
type Source interface {
	Tickers() ([]string, error)
	Name() string
}

// StaticSource yields a fixed list of tickers.
type StaticSource struct {
	Symbols []string
}

// NewStaticSource creates a static source, falling back to DefaultPool
// when no symbols are given.
func NewStaticSource(symbols []string) *StaticSource {
	if len(symbols) == 0 {
		symbols = DefaultPool
	}
	return &StaticSource{Symbols: symbols}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Tickers() ([]string, error) {
	out := make([]string, len(s.Symbols))
	copy(out, s.Symbols)
	return out, nil
}
