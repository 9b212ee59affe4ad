package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/internal/scoring"
)

// factorNames are the strategies the multi-factor combination runs.
var factorNames = []string{"value", "growth", "momentum", "quality"}

// MultiFactor runs every factor strategy over the dataset and combines
// their rankings into one composite ranking via min-max normalization
// and a weighted sum.
type MultiFactor struct {
	registry *Registry
}

func NewMultiFactor(registry *Registry) *MultiFactor {
	return &MultiFactor{registry: registry}
}

func (m *MultiFactor) Name() string { return "multi_factor" }

func (m *MultiFactor) Description() string {
	return "weighted combination of the value, growth, momentum and quality rankings"
}

func (m *MultiFactor) RequiredParams() []string { return nil }

func (m *MultiFactor) DefaultParams() contracts.Params {
	return contracts.Params{
		"weights": scoring.DefaultWeights(),
		"top_n":   30,
	}
}

func (m *MultiFactor) Execute(ctx context.Context, stocks []contracts.StockData, params contracts.Params) (*contracts.StrategyResult, error) {
	weights := weightsParam(params)
	topN := params.Int("top_n", 30)

	// a factor failing or selecting nothing just contributes no scores
	results := m.registry.ExecuteAll(ctx, factorNames, stocks, nil)
	if len(results) == 0 {
		return nil, fmt.Errorf("no factor strategy produced a result")
	}

	combined := scoring.Combine(results, weights, topN)

	selected := make([]contracts.FactorScore, len(combined))
	for i, c := range combined {
		selected[i] = contracts.FactorScore{
			Symbol: c.Symbol,
			Name:   c.Name,
			Score:  c.Composite,
		}
	}

	return &contracts.StrategyResult{
		StrategyName: m.Name(),
		Selected:     selected,
		ExecutedAt:   time.Now(),
		Parameters:   params,
		Message:      fmt.Sprintf("combined %d factor rankings into %d stocks", len(results), len(selected)),
	}, nil
}

// Combined returns the composite ranking with per-factor breakdowns,
// for callers that want more than the flat score list.
func (m *MultiFactor) Combined(ctx context.Context, stocks []contracts.StockData, params contracts.Params) []contracts.MultiFactorScore {
	merged := m.DefaultParams().Merge(params)
	results := m.registry.ExecuteAll(ctx, factorNames, stocks, nil)
	return scoring.Combine(results, weightsParam(merged), merged.Int("top_n", 30))
}

func weightsParam(params contracts.Params) map[string]float64 {
	if w, ok := params["weights"].(map[string]float64); ok && len(w) > 0 {
		return w
	}
	return scoring.DefaultWeights()
}
