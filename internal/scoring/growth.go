package scoring

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wonny/goldcross/internal/contracts"
)

// GrowthStrategy picks profitable compounders: revenue growth and ROE
// above their floors with a positive profit margin.
type GrowthStrategy struct{}

func NewGrowthStrategy() *GrowthStrategy { return &GrowthStrategy{} }

func (s *GrowthStrategy) Name() string { return "growth" }

func (s *GrowthStrategy) Description() string {
	return "high revenue growth and ROE with positive margins"
}

func (s *GrowthStrategy) RequiredParams() []string {
	return []string{"min_revenue_growth", "min_roe"}
}

func (s *GrowthStrategy) DefaultParams() contracts.Params {
	return contracts.Params{
		"min_revenue_growth": 0.1,
		"min_roe":            0.15,
		"top_n":              20,
	}
}

func (s *GrowthStrategy) Execute(_ context.Context, stocks []contracts.StockData, params contracts.Params) (*contracts.StrategyResult, error) {
	minGrowth := params.Float64("min_revenue_growth", 0.1)
	minROE := params.Float64("min_roe", 0.15)
	topN := params.Int("top_n", 20)

	var selected []contracts.FactorScore
	for _, stock := range stocks {
		f := stock.Fundamentals
		if f.RevenueGrowth == nil || f.ROE == nil || f.ProfitMargin == nil {
			continue
		}
		if *f.RevenueGrowth < minGrowth || *f.ROE < minROE || *f.ProfitMargin <= 0 {
			continue
		}

		score := *f.RevenueGrowth*0.4 + *f.ROE*0.4 + *f.ProfitMargin*0.2
		selected = append(selected, contracts.FactorScore{
			Symbol: stock.Symbol.Code,
			Name:   stock.Symbol.Name,
			Score:  score,
		})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Score > selected[j].Score
	})
	if len(selected) > topN {
		selected = selected[:topN]
	}

	return &contracts.StrategyResult{
		StrategyName: s.Name(),
		Selected:     selected,
		ExecutedAt:   time.Now(),
		Parameters:   params,
		Message:      fmt.Sprintf("%d stocks passed the growth screen", len(selected)),
	}, nil
}
