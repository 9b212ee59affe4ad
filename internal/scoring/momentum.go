package scoring

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wonny/goldcross/internal/contracts"
)

// trading days per calendar month and quarter
const (
	barsPerMonth   = 21
	barsPerQuarter = 63
)

// MomentumStrategy picks liquid stocks in an established uptrend:
// positive MACD, RSI in a healthy band and a strong one month return,
// confirmed by price sitting above its 20 day average.
type MomentumStrategy struct{}

func NewMomentumStrategy() *MomentumStrategy { return &MomentumStrategy{} }

func (s *MomentumStrategy) Name() string { return "momentum" }

func (s *MomentumStrategy) Description() string {
	return "liquid uptrends with healthy RSI and positive MACD"
}

func (s *MomentumStrategy) RequiredParams() []string {
	return []string{"min_price", "min_volume", "min_return_1m"}
}

func (s *MomentumStrategy) DefaultParams() contracts.Params {
	return contracts.Params{
		"min_price":     10.0,
		"min_volume":    1e6,
		"min_return_1m": 5.0,
		"rsi_low":       50.0,
		"rsi_high":      70.0,
		"top_n":         20,
	}
}

func (s *MomentumStrategy) Execute(_ context.Context, stocks []contracts.StockData, params contracts.Params) (*contracts.StrategyResult, error) {
	minPrice := params.Float64("min_price", 10)
	minVolume := params.Float64("min_volume", 1e6)
	minRet1M := params.Float64("min_return_1m", 5)
	rsiLow := params.Float64("rsi_low", 50)
	rsiHigh := params.Float64("rsi_high", 70)
	topN := params.Int("top_n", 20)

	var selected []contracts.FactorScore
	for _, stock := range stocks {
		f := stock.Fundamentals
		if f.Price == nil || f.Volume == nil {
			continue
		}
		if *f.Price < minPrice || *f.Volume < minVolume {
			continue
		}

		closes := stock.Series.Closes()
		ret1m, ok := PeriodReturn(closes, barsPerMonth)
		if !ok || ret1m <= minRet1M {
			continue
		}
		ret3m, ok := PeriodReturn(closes, barsPerQuarter)
		if !ok {
			continue
		}

		rsi := RSI(closes, 14)
		if rsi <= rsiLow || rsi >= rsiHigh {
			continue
		}
		if MACD(closes) <= 0 {
			continue
		}

		sma20 := SMA(closes, 20)
		if sma20 == 0 {
			continue
		}
		aboveSMA := (*f.Price/sma20 - 1) * 100

		score := ret1m*0.3 + ret3m*0.3 + (rsi-50)*0.2 + aboveSMA*0.2
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
		Message:      fmt.Sprintf("%d stocks passed the momentum screen", len(selected)),
	}, nil
}
