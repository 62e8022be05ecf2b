package reporter

// Sink receives human-readable scan diagnostics. Implementations are
// purely observational; the screener never consults a sink for control
// flow.
type Sink interface {
	Scanning(total int)
	Analyzing(ticker string)
	Skipped(ticker, reason string)
	Fault(ticker string, err error)
	Bullish(ticker string, lastClose, average float64)
	Done(matched int)
}

// NoopSink discards all diagnostics. Used when verbose output is off.
type NoopSink struct{}

func NewNoopSink() *NoopSink { return &NoopSink{} }

func (*NoopSink) Scanning(_ int) {}

func (*NoopSink) Analyzing(_ string) {}

func (*NoopSink) Skipped(_, _ string) {}

func (*NoopSink) Fault(_ string, _ error) {}

func (*NoopSink) Bullish(_ string, _, _ float64) {}

func (*NoopSink) Done(_ int) {}
