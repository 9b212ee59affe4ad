// Package analysis computes moving averages over daily price series and
// detects golden cross signals on them.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/wonny/goldcross/internal/contracts"
)

// MASeries is a price series annotated with one rolling mean column per
// configured window. Undefined positions hold NaN.
type MASeries struct {
	Series  contracts.PriceSeries
	Windows []int
	// Columns is keyed by window length; each column has the same
	// length as Series.
	Columns map[int][]float64
}

// Defined reports whether the average for window w exists at index i.
func (m *MASeries) Defined(w, i int) bool {
	col, ok := m.Columns[w]
	if !ok || i < 0 || i >= len(col) {
		return false
	}
	return !math.IsNaN(col[i])
}

// Value returns the average for window w at index i. Call Defined first.
func (m *MASeries) Value(w, i int) float64 {
	return m.Columns[w][i]
}

// Engine computes rolling means of the close column.
//
// The default mode is lenient: positions before a window fills are
// averaged over however many bars exist, so the first bar's MA equals
// its close. Strict mode leaves those positions undefined instead,
// which suppresses crossover detection early in a series.
type Engine struct {
	windows []int
	strict  bool
}

func NewEngine(windows []int, strict bool) (*Engine, error) {
	if len(windows) < 2 {
		return nil, fmt.Errorf("need at least two windows, got %d", len(windows))
	}
	sorted := make([]int, len(windows))
	copy(sorted, windows)
	sort.Ints(sorted)
	for i, w := range sorted {
		if w <= 0 {
			return nil, fmt.Errorf("window must be positive, got %d", w)
		}
		if i > 0 && sorted[i-1] == w {
			return nil, fmt.Errorf("duplicate window %d", w)
		}
	}
	return &Engine{windows: sorted, strict: strict}, nil
}

// Windows returns the configured window lengths, ascending.
func (e *Engine) Windows() []int {
	out := make([]int, len(e.windows))
	copy(out, e.windows)
	return out
}

// FastWindow is the shortest configured window.
func (e *Engine) FastWindow() int { return e.windows[0] }

// SlowWindows are all windows longer than the fast one.
func (e *Engine) SlowWindows() []int {
	out := make([]int, len(e.windows)-1)
	copy(out, e.windows[1:])
	return out
}

// Compute annotates the series with a rolling mean column per window.
func (e *Engine) Compute(series contracts.PriceSeries) *MASeries {
	closes := series.Closes()
	columns := make(map[int][]float64, len(e.windows))
	for _, w := range e.windows {
		columns[w] = rollingMean(closes, w, e.strict)
	}
	return &MASeries{Series: series, Windows: e.Windows(), Columns: columns}
}

func rollingMean(values []float64, window int, strict bool) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		switch {
		case i >= window-1:
			out[i] = sum / float64(window)
		case strict:
			out[i] = math.NaN()
		default:
			out[i] = sum / float64(i+1)
		}
	}
	return out
}
