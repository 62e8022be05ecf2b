package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockScout/internal/model"
)

// FormatScanReport formats a scan outcome into a Telegram message.
func FormatScanReport(result *model.ScanResult, window int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📡 <b>StockScout scan</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Scanned: %d | Skipped: %d | Window: %d days\n\n",
		result.Scanned, result.Skipped, window))

	if len(result.Matches) == 0 {
		b.WriteString("No tickers above their trailing average.")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("📈 <b>Bullish (%d):</b>\n", len(result.Matches)))
	for _, m := range result.Matches {
		dev := 0.0
		if m.Average > 0 {
			dev = (m.LastClose - m.Average) / m.Average * 100
		}
		b.WriteString(fmt.Sprintf("  %s: %.2f vs SMA %.2f (%+.1f%%)\n",
			m.Ticker, m.LastClose, m.Average, dev))
	}
	return b.String()
}
