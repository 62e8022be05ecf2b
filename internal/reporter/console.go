package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	tickerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	bullishStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	faultStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// ConsoleSink writes colored per-ticker progress to a terminal.
type ConsoleSink struct {
	Out io.Writer
}

func NewConsoleSink() *ConsoleSink { return &ConsoleSink{Out: os.Stdout} }

func (c *ConsoleSink) Scanning(total int) {
	fmt.Fprintln(c.Out, headerStyle.Render(fmt.Sprintf("Scanning %d tickers...", total)))
}

func (c *ConsoleSink) Analyzing(ticker string) {
	fmt.Fprintf(c.Out, "  - analyzing %s\n", tickerStyle.Render(ticker))
}

func (c *ConsoleSink) Skipped(ticker, reason string) {
	fmt.Fprintln(c.Out, skipStyle.Render(fmt.Sprintf("    %s skipped: %s", ticker, reason)))
}

func (c *ConsoleSink) Fault(ticker string, err error) {
	fmt.Fprintln(c.Out, faultStyle.Render(fmt.Sprintf("    %s failed: %v", ticker, err)))
}

func (c *ConsoleSink) Bullish(ticker string, lastClose, average float64) {
	fmt.Fprintln(c.Out, bullishStyle.Render(
		fmt.Sprintf("    bullish signal for %s (close %.2f > SMA %.2f)", ticker, lastClose, average)))
}

func (c *ConsoleSink) Done(matched int) {
	fmt.Fprintln(c.Out, headerStyle.Render(fmt.Sprintf("Scan finished: %d bullish", matched)))
}
