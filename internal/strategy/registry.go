// Package strategy exposes the selection strategies behind a named
// registry. The set of strategies is enumerated at construction; there
// is no runtime discovery.
package strategy

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/internal/scoring"
	"github.com/wonny/goldcross/pkg/logger"
)

// Registry maps strategy names to implementations.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]contracts.Strategy
	log        *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		strategies: make(map[string]contracts.Strategy),
		log:        log,
	}
}

// DefaultRegistry returns a registry holding the four factor strategies
// and the multi-factor combination.
func DefaultRegistry(log *logger.Logger) *Registry {
	r := NewRegistry(log)
	for _, s := range []contracts.Strategy{
		scoring.NewValueStrategy(),
		scoring.NewGrowthStrategy(),
		scoring.NewMomentumStrategy(),
		scoring.NewQualityStrategy(),
	} {
		// the enumerated set has no duplicates
		_ = r.Register(s)
	}
	_ = r.Register(NewMultiFactor(r))
	return r
}

func (r *Registry) Register(s contracts.Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.strategies[name]; exists {
		return fmt.Errorf("strategy %q already registered", name)
	}
	r.strategies[name] = s
	return nil
}

func (r *Registry) Get(name string) (contracts.Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[name]
	return s, ok
}

// Names lists registered strategies in stable order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs one strategy by name. Caller params are overlaid on the
// strategy defaults; missing required parameters fail before execution.
func (r *Registry) Execute(ctx context.Context, name string, stocks []contracts.StockData, params contracts.Params) (*contracts.StrategyResult, error) {
	s, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", name)
	}

	merged := s.DefaultParams().Merge(params)
	for _, key := range s.RequiredParams() {
		if _, present := merged[key]; !present {
			return nil, fmt.Errorf("strategy %q: missing required parameter %q", name, key)
		}
	}

	start := time.Now()
	result, err := s.Execute(ctx, stocks, merged)
	if err != nil {
		return nil, fmt.Errorf("strategy %q: %w", name, err)
	}

	r.log.WithFields(map[string]interface{}{
		"strategy": name,
		"selected": len(result.Selected),
		"duration": time.Since(start),
	}).Info("strategy executed")
	return result, nil
}

// ExecuteAll runs every named strategy over the same dataset. A failing
// strategy is logged and skipped; the remaining results are returned.
func (r *Registry) ExecuteAll(ctx context.Context, names []string, stocks []contracts.StockData, params contracts.Params) []*contracts.StrategyResult {
	results := make([]*contracts.StrategyResult, 0, len(names))
	for _, name := range names {
		result, err := r.Execute(ctx, name, stocks, params)
		if err != nil {
			r.log.WithError(err).WithField("strategy", name).Warn("strategy failed, skipping")
			continue
		}
		results = append(results, result)
	}
	return results
}
