package analysis

import (
	"sort"

	"github.com/wonny/goldcross/internal/contracts"
)

// Detector scans the tail of an annotated series for golden crosses of
// the fast average over each slower average.
type Detector struct {
	engine   *Engine
	lookback int
}

func NewDetector(engine *Engine, lookbackDays int) *Detector {
	return &Detector{engine: engine, lookback: lookbackDays}
}

// Detect computes the averages for series and scans the most recent
// lookback bars. A series shorter than the longest window plus the
// lookback yields no events; the rolling columns are not trusted until
// the slowest window has filled.
//
// One bar may fire once per slow window, so a single day can produce
// several events for the same symbol. Events are not deduplicated.
func (d *Detector) Detect(symbol contracts.Symbol, series contracts.PriceSeries) []contracts.CrossoverEvent {
	windows := d.engine.Windows()
	maxWindow := windows[len(windows)-1]
	if len(series) < maxWindow+d.lookback {
		return nil
	}

	ma := d.engine.Compute(series)
	fast := d.engine.FastWindow()

	var events []contracts.CrossoverEvent
	for _, slow := range d.engine.SlowWindows() {
		for back := 0; back < d.lookback; back++ {
			idx := len(series) - 1 - back
			if idx < 1 {
				break
			}
			if !ma.Defined(fast, idx) || !ma.Defined(slow, idx) ||
				!ma.Defined(fast, idx-1) || !ma.Defined(slow, idx-1) {
				continue
			}

			fastNow, slowNow := ma.Value(fast, idx), ma.Value(slow, idx)
			fastPrev, slowPrev := ma.Value(fast, idx-1), ma.Value(slow, idx-1)

			// equality the prior bar still counts as not-yet-crossed,
			// equality now does not count as crossed
			if !(fastNow > slowNow && fastPrev <= slowPrev) {
				continue
			}

			events = append(events, contracts.CrossoverEvent{
				Symbol:     symbol.Code,
				Name:       symbol.Name,
				Date:       series[idx].Date,
				FastWindow: fast,
				SlowWindow: slow,
				FastValue:  fastNow,
				SlowValue:  slowNow,
				ClosePrice: series[idx].Close,
				Strength:   classifyStrength(fastNow, slowNow),
			})
		}
	}
	return events
}

// classifyStrength grades a cross by the relative gap between the
// averages at the crossing bar.
func classifyStrength(fast, slow float64) contracts.Strength {
	if slow == 0 {
		return contracts.StrengthWeak
	}
	gap := (fast - slow) / slow * 100
	switch {
	case gap > 2:
		return contracts.StrengthStrong
	case gap > 1:
		return contracts.StrengthModerate
	default:
		return contracts.StrengthWeak
	}
}

// SortEvents orders events newest first, strongest first within a day.
// The tie-break keeps report output reproducible across runs.
func SortEvents(events []contracts.CrossoverEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.After(events[j].Date)
		}
		return events[i].Strength.Rank() > events[j].Strength.Rank()
	})
}
