package contracts

import "context"

// SourceAdapter fetches daily price history for one symbol from one
// upstream quote provider. Implementations return an error for any
// failure mode (transport, parse, empty payload); the fetcher treats all
// adapter errors uniformly and moves on to the next source.
type SourceAdapter interface {
	// Name identifies the provider in logs and cache bookkeeping.
	Name() string

	// FetchSeries returns up to days of daily bars, oldest first.
	FetchSeries(ctx context.Context, code string, days int) (PriceSeries, error)
}

// UniverseSource lists the tradable symbols to screen.
type UniverseSource interface {
	Name() string
	FetchUniverse(ctx context.Context) ([]Symbol, error)
}

// FundamentalsSource provides the fundamental snapshot for the factor
// strategies. Only some providers can serve this.
type FundamentalsSource interface {
	Name() string
	FetchFundamentals(ctx context.Context) ([]StockData, error)
}

// Params is a loosely typed parameter bag passed into strategies.
type Params map[string]any

// Float64 reads a numeric parameter, accepting int and float64 literals.
func (p Params) Float64(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

// Int reads an integer parameter.
func (p Params) Int(key string, def int) int {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

// Merge overlays other on top of p and returns a new bag.
func (p Params) Merge(other Params) Params {
	out := make(Params, len(p)+len(other))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Strategy is one selection strategy over fundamental and price data.
type Strategy interface {
	Name() string
	Description() string

	// RequiredParams lists parameter keys that must be present for
	// Execute to run. DefaultParams are merged under caller params.
	RequiredParams() []string
	DefaultParams() Params

	Execute(ctx context.Context, stocks []StockData, params Params) (*StrategyResult, error)
}
