package notifier

import (
	"encoding/json"
	"fmt"
	"strings"

	"DivSentinel/internal/model"
	"DivSentinel/internal/strategy"
)

// FormatTradeAlert builds the plain-text alert for a profitable decision:
// expected profit, the original request payload, expected drop and yield
// in percent, and the per-offset distribution table.
func FormatTradeAlert(req model.AnalysisRequest, dec *strategy.Decision, stats []model.OffsetStats) string {
	payload, _ := json.Marshal(req)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Potential Trade: EXPECTED PROFIT: %.4f %%\n\n", dec.ExpectedProfit))
	b.WriteString(string(payload))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("EXPECTED DROP: %.4f %%\n", 100*dec.Drop))
	b.WriteString(fmt.Sprintf("EXPECTED YIELD: %.4f %%\n\n", 100*dec.Yield))
	b.WriteString("STATS\n")
	b.WriteString(FormatStatsTable(stats))
	return b.String()
}

// FormatStatsTable renders the cross-event distribution, one row per
// trading-day offset.
func FormatStatsTable(stats []model.OffsetStats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%7s %6s %9s %9s %9s %9s %9s %9s %9s\n",
		"offset", "count", "mean", "std", "min", "25%", "50%", "75%", "max"))
	for _, s := range stats {
		b.WriteString(fmt.Sprintf("%7d %6d %9.4f %9.4f %9.4f %9.4f %9.4f %9.4f %9.4f\n",
			s.Offset, s.Count, s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max))
	}
	return b.String()
}
