package report

import (
	"fmt"
	"strings"

	"github.com/wonny/goldcross/internal/contracts"
)

// RenderScreen formats a screening result as a plain text report.
func RenderScreen(result *contracts.ScreenResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Golden cross screen  %s\n", result.RunAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "universe %d  scanned %d  failed %d  cache hits %d  %.1fs\n\n",
		result.Universe, result.Scanned, result.Failed, result.FromCacheHit,
		float64(result.ElapsedMS)/1000)

	if len(result.Events) == 0 {
		b.WriteString("no crossover events\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%-12s %-10s %-12s %8s %10s %10s %10s %s\n",
		"code", "name", "date", "cross", "close", "fast", "slow", "strength")
	for _, ev := range result.Events {
		fmt.Fprintf(&b, "%-12s %-10s %-12s %4d/%-3d %10.2f %10.2f %10.2f %s\n",
			ev.Symbol, ev.Name, ev.Date.Format("2006-01-02"),
			ev.FastWindow, ev.SlowWindow,
			ev.ClosePrice, ev.FastValue, ev.SlowValue, ev.Strength)
	}

	b.WriteString("\n")
	b.WriteString(renderStrengthSummary(result.Events))
	return b.String()
}

func renderStrengthSummary(events []contracts.CrossoverEvent) string {
	counts := map[contracts.Strength]int{}
	for _, ev := range events {
		counts[ev.Strength]++
	}
	return fmt.Sprintf("%d events  strong %d  moderate %d  weak %d\n",
		len(events),
		counts[contracts.StrengthStrong],
		counts[contracts.StrengthModerate],
		counts[contracts.StrengthWeak])
}

// RenderRanking formats a strategy result as a plain text table.
func RenderRanking(result *contracts.StrategyResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Strategy %s  %s\n", result.StrategyName,
		result.ExecutedAt.Format("2006-01-02 15:04"))
	if result.Message != "" {
		fmt.Fprintf(&b, "%s\n", result.Message)
	}
	b.WriteString("\n")

	if len(result.Selected) == 0 {
		b.WriteString("no stocks selected\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%4s %-12s %-10s %12s\n", "rank", "code", "name", "score")
	for i, fs := range result.Selected {
		fmt.Fprintf(&b, "%4d %-12s %-10s %12.4f\n", i+1, fs.Symbol, fs.Name, fs.Score)
	}
	return b.String()
}
