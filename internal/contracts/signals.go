package contracts

import "time"

// Strength classifies a crossover by the percentage gap between the fast
// and slow averages at the crossing bar.
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
)

// Rank maps strength to a sortable ordinal, higher is stronger.
func (s Strength) Rank() int {
	switch s {
	case StrengthStrong:
		return 3
	case StrengthModerate:
		return 2
	case StrengthWeak:
		return 1
	default:
		return 0
	}
}

// CrossoverEvent records a fast MA crossing above a slow MA on a
// specific bar for a specific symbol.
type CrossoverEvent struct {
	Symbol     string    `json:"symbol"`
	Name       string    `json:"name"`
	Date       time.Time `json:"date"`
	FastWindow int       `json:"fast_window"`
	SlowWindow int       `json:"slow_window"`
	FastValue  float64   `json:"fast_value"`
	SlowValue  float64   `json:"slow_value"`
	ClosePrice float64   `json:"close_price"`
	Strength   Strength  `json:"strength"`
}

// FactorScore is one strategy's score for one symbol.
type FactorScore struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
}

// MultiFactorScore is the combined ranking entry produced by the
// multi-factor combiner. Breakdown holds the normalized per-strategy
// contributions keyed by strategy name; a strategy that did not select
// the symbol contributes zero and is absent from the map.
type MultiFactorScore struct {
	Symbol    string             `json:"symbol"`
	Name      string             `json:"name"`
	Composite float64            `json:"composite"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// StrategyResult is the envelope every strategy execution returns.
type StrategyResult struct {
	StrategyName string        `json:"strategy_name"`
	Selected     []FactorScore `json:"selected"`
	ExecutedAt   time.Time     `json:"executed_at"`
	Parameters   Params        `json:"parameters"`
	Message      string        `json:"message,omitempty"`
}

// ScreenResult is the full outcome of one screener run.
type ScreenResult struct {
	RunAt        time.Time        `json:"run_at"`
	Universe     int              `json:"universe"`
	Scanned      int              `json:"scanned"`
	Failed       int              `json:"failed"`
	Events       []CrossoverEvent `json:"events"`
	FailedCodes  []string         `json:"failed_codes,omitempty"`
	ElapsedMS    int64            `json:"elapsed_ms"`
	FromCacheHit int              `json:"from_cache_hit"`
}
