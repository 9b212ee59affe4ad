package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/goldcross/internal/contracts"
)

func TestRenderScreen(t *testing.T) {
	result := &contracts.ScreenResult{
		RunAt:    time.Date(2025, 6, 3, 16, 0, 0, 0, time.UTC),
		Universe: 100,
		Scanned:  98,
		Failed:   2,
		Events: []contracts.CrossoverEvent{
			{
				Symbol: "600519.SH", Name: "贵州茅台",
				Date:       time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
				FastWindow: 5, SlowWindow: 20,
				FastValue: 1510.2, SlowValue: 1450.8, ClosePrice: 1530,
				Strength: contracts.StrengthStrong,
			},
		},
	}

	out := RenderScreen(result)
	assert.Contains(t, out, "600519.SH")
	assert.Contains(t, out, "2025-06-03")
	assert.Contains(t, out, "strong 1")
	assert.Contains(t, out, "universe 100")
}

func TestRenderScreenEmpty(t *testing.T) {
	out := RenderScreen(&contracts.ScreenResult{RunAt: time.Now()})
	assert.Contains(t, out, "no crossover events")
}

func TestRenderRanking(t *testing.T) {
	result := &contracts.StrategyResult{
		StrategyName: "value",
		ExecutedAt:   time.Now(),
		Message:      "2 stocks passed the value screen",
		Selected: []contracts.FactorScore{
			{Symbol: "600036.SH", Name: "招商银行", Score: 0.1234},
			{Symbol: "601318.SH", Name: "中国平安", Score: 0.2345},
		},
	}

	out := RenderRanking(result)
	assert.Contains(t, out, "Strategy value")
	assert.Contains(t, out, "600036.SH")
	assert.Contains(t, out, "0.1234")
}

func TestRenderRankingEmpty(t *testing.T) {
	out := RenderRanking(&contracts.StrategyResult{StrategyName: "growth", ExecutedAt: time.Now()})
	assert.Contains(t, out, "no stocks selected")
}
