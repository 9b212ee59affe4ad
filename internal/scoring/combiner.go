package scoring

import (
	"sort"

	"github.com/wonny/goldcross/internal/contracts"
)

// normGuard keeps the min-max denominator away from zero when every
// score in a result set is identical.
const normGuard = 1e-10

// DefaultWeights gives each factor an equal quarter.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		"value":    0.25,
		"growth":   0.25,
		"momentum": 0.25,
		"quality":  0.25,
	}
}

// Combine merges per-strategy rankings into one composite ranking.
//
// Each strategy's scores are min-max normalized to [0,1] within that
// strategy's result set, on the raw score as reported regardless of the
// strategy's own sort direction. A symbol absent from a strategy
// contributes zero for it. The composite is the weighted sum, sorted
// descending and truncated to topN; topN <= 0 means no truncation.
func Combine(results []*contracts.StrategyResult, weights map[string]float64, topN int) []contracts.MultiFactorScore {
	type entry struct {
		name      string
		breakdown map[string]float64
		composite float64
	}
	entries := make(map[string]*entry)

	for _, result := range results {
		if result == nil || len(result.Selected) == 0 {
			continue
		}
		weight, ok := weights[result.StrategyName]
		if !ok || weight == 0 {
			continue
		}

		minScore, maxScore := result.Selected[0].Score, result.Selected[0].Score
		for _, fs := range result.Selected[1:] {
			if fs.Score < minScore {
				minScore = fs.Score
			}
			if fs.Score > maxScore {
				maxScore = fs.Score
			}
		}
		span := maxScore - minScore + normGuard

		for _, fs := range result.Selected {
			norm := (fs.Score - minScore) / span

			e, ok := entries[fs.Symbol]
			if !ok {
				e = &entry{name: fs.Name, breakdown: make(map[string]float64)}
				entries[fs.Symbol] = e
			}
			e.breakdown[result.StrategyName] = norm
			e.composite += norm * weight
		}
	}

	scores := make([]contracts.MultiFactorScore, 0, len(entries))
	for symbol, e := range entries {
		scores = append(scores, contracts.MultiFactorScore{
			Symbol:    symbol,
			Name:      e.name,
			Composite: e.composite,
			Breakdown: e.breakdown,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Composite != scores[j].Composite {
			return scores[i].Composite > scores[j].Composite
		}
		return scores[i].Symbol < scores[j].Symbol
	})
	if topN > 0 && len(scores) > topN {
		scores = scores[:topN]
	}
	return scores
}
