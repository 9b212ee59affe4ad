package scoring

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wonny/goldcross/internal/contracts"
)

// ValueStrategy picks cheap dividend payers: bounded P/E and P/B with a
// positive yield and a market cap floor to keep out micro caps.
type ValueStrategy struct{}

func NewValueStrategy() *ValueStrategy { return &ValueStrategy{} }

func (s *ValueStrategy) Name() string { return "value" }

func (s *ValueStrategy) Description() string {
	return "low P/E and P/B dividend payers above a market cap floor"
}

func (s *ValueStrategy) RequiredParams() []string {
	return []string{"max_pe", "max_pb", "min_market_cap"}
}

func (s *ValueStrategy) DefaultParams() contracts.Params {
	return contracts.Params{
		"max_pe":         30.0,
		"max_pb":         3.0,
		"min_market_cap": 1e9,
		"min_dividend":   0.0,
		"top_n":          20,
	}
}

func (s *ValueStrategy) Execute(_ context.Context, stocks []contracts.StockData, params contracts.Params) (*contracts.StrategyResult, error) {
	maxPE := params.Float64("max_pe", 30)
	maxPB := params.Float64("max_pb", 3)
	minCap := params.Float64("min_market_cap", 1e9)
	minDiv := params.Float64("min_dividend", 0)
	topN := params.Int("top_n", 20)

	var selected []contracts.FactorScore
	for _, stock := range stocks {
		f := stock.Fundamentals
		if f.MarketCap == nil || f.PE == nil || f.PB == nil || f.DividendYield == nil {
			continue
		}
		if *f.MarketCap < minCap ||
			*f.PE <= 0 || *f.PE > maxPE ||
			*f.PB <= 0 || *f.PB > maxPB ||
			*f.DividendYield <= minDiv {
			continue
		}

		// lower P/E and P/B and higher yield make a lower, better score
		score := *f.PE/maxPE*0.4 + *f.PB/maxPB*0.4 - *f.DividendYield*10*0.2
		selected = append(selected, contracts.FactorScore{
			Symbol: stock.Symbol.Code,
			Name:   stock.Symbol.Name,
			Score:  score,
		})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Score < selected[j].Score
	})
	if len(selected) > topN {
		selected = selected[:topN]
	}

	return &contracts.StrategyResult{
		StrategyName: s.Name(),
		Selected:     selected,
		ExecutedAt:   time.Now(),
		Parameters:   params,
		Message:      fmt.Sprintf("%d stocks passed the value screen", len(selected)),
	}, nil
}
