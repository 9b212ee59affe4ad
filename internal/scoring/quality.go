package scoring

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wonny/goldcross/internal/contracts"
)

// QualityStrategy picks conservatively financed, profitable companies:
// decent ROE and margins with low leverage. A missing debt to equity
// figure is assumed hostile rather than clean.
type QualityStrategy struct{}

func NewQualityStrategy() *QualityStrategy { return &QualityStrategy{} }

func (s *QualityStrategy) Name() string { return "quality" }

func (s *QualityStrategy) Description() string {
	return "profitable low leverage balance sheets"
}

func (s *QualityStrategy) RequiredParams() []string {
	return []string{"min_roe", "max_debt_to_equity"}
}

func (s *QualityStrategy) DefaultParams() contracts.Params {
	return contracts.Params{
		"min_roe":            0.1,
		"max_debt_to_equity": 1.0,
		"min_margin":         0.05,
		"top_n":              20,
	}
}

func (s *QualityStrategy) Execute(_ context.Context, stocks []contracts.StockData, params contracts.Params) (*contracts.StrategyResult, error) {
	minROE := params.Float64("min_roe", 0.1)
	maxD2E := params.Float64("max_debt_to_equity", 1.0)
	minMargin := params.Float64("min_margin", 0.05)
	topN := params.Int("top_n", 20)

	var selected []contracts.FactorScore
	for _, stock := range stocks {
		f := stock.Fundamentals
		if f.ROE == nil || f.ProfitMargin == nil {
			continue
		}

		// unknown leverage is penalized, not forgiven
		d2e := contracts.Float(f.DebtToEquity, 10)

		if *f.ROE < minROE || d2e > maxD2E || *f.ProfitMargin <= minMargin {
			continue
		}

		leverage := d2e / maxD2E
		if leverage > 1 {
			leverage = 1
		}
		score := *f.ROE*0.4 + (1-leverage)*0.3 + *f.ProfitMargin*0.3

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
		Message:      fmt.Sprintf("%d stocks passed the quality screen", len(selected)),
	}, nil
}
