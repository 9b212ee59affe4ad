package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/pkg/logger"
)

type stubStrategy struct {
	name      string
	required  []string
	result    *contracts.StrategyResult
	err       error
	gotParams contracts.Params
}

func (s *stubStrategy) Name() string                    { return s.name }
func (s *stubStrategy) Description() string             { return "stub" }
func (s *stubStrategy) RequiredParams() []string        { return s.required }
func (s *stubStrategy) DefaultParams() contracts.Params { return contracts.Params{"floor": 1.0} }

func (s *stubStrategy) Execute(_ context.Context, _ []contracts.StockData, params contracts.Params) (*contracts.StrategyResult, error) {
	s.gotParams = params
	return s.result, s.err
}

func TestRegistryRegisterDuplicate(t *testing.T) {
	r := NewRegistry(logger.Nop())
	require.NoError(t, r.Register(&stubStrategy{name: "x"}))
	assert.Error(t, r.Register(&stubStrategy{name: "x"}))
}

func TestRegistryExecuteUnknown(t *testing.T) {
	r := NewRegistry(logger.Nop())
	_, err := r.Execute(context.Background(), "nope", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}

func TestRegistryExecuteMergesDefaults(t *testing.T) {
	stub := &stubStrategy{name: "x", result: &contracts.StrategyResult{StrategyName: "x"}}
	r := NewRegistry(logger.Nop())
	require.NoError(t, r.Register(stub))

	_, err := r.Execute(context.Background(), "x", nil, contracts.Params{"cap": 2.0})
	require.NoError(t, err)

	assert.Equal(t, 1.0, stub.gotParams.Float64("floor", 0))
	assert.Equal(t, 2.0, stub.gotParams.Float64("cap", 0))
}

func TestRegistryExecuteMissingRequiredParam(t *testing.T) {
	stub := &stubStrategy{name: "x", required: []string{"threshold"}}
	r := NewRegistry(logger.Nop())
	require.NoError(t, r.Register(stub))

	_, err := r.Execute(context.Background(), "x", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")
}

func TestRegistryExecuteAllSkipsFailures(t *testing.T) {
	good := &stubStrategy{name: "good", result: &contracts.StrategyResult{StrategyName: "good"}}
	bad := &stubStrategy{name: "bad", err: errors.New("boom")}

	r := NewRegistry(logger.Nop())
	require.NoError(t, r.Register(good))
	require.NoError(t, r.Register(bad))

	results := r.ExecuteAll(context.Background(), []string{"good", "bad", "missing"}, nil, nil)
	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].StrategyName)
}

func TestDefaultRegistryNames(t *testing.T) {
	r := DefaultRegistry(logger.Nop())
	assert.Equal(t, []string{"growth", "momentum", "multi_factor", "quality", "value"}, r.Names())
}

func TestMultiFactorExecute(t *testing.T) {
	r := DefaultRegistry(logger.Nop())

	stocks := []contracts.StockData{
		{
			Symbol: contracts.Symbol{Code: "600036.SH", Name: "solid"},
			Fundamentals: contracts.Fundamentals{
				MarketCap:     contracts.FloatPtr(5e10),
				PE:            contracts.FloatPtr(8),
				PB:            contracts.FloatPtr(1.1),
				DividendYield: contracts.FloatPtr(0.04),
				RevenueGrowth: contracts.FloatPtr(0.2),
				ROE:           contracts.FloatPtr(0.18),
				ProfitMargin:  contracts.FloatPtr(0.3),
				DebtToEquity:  contracts.FloatPtr(0.5),
			},
		},
		{
			Symbol: contracts.Symbol{Code: "600999.SH", Name: "junk"},
			Fundamentals: contracts.Fundamentals{
				MarketCap: contracts.FloatPtr(1e8),
			},
		},
	}

	result, err := r.Execute(context.Background(), "multi_factor", stocks, nil)
	require.NoError(t, err)
	require.NotEmpty(t, result.Selected)
	assert.Equal(t, "600036.SH", result.Selected[0].Symbol)
}
