package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/goldcross/internal/contracts"
)

func seriesFromCloses(closes ...float64) contracts.PriceSeries {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	series := make(contracts.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = contracts.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return series
}

func mustEngine(t *testing.T, windows []int, strict bool) *Engine {
	t.Helper()
	e, err := NewEngine(windows, strict)
	require.NoError(t, err)
	return e
}

func TestNewEngineValidation(t *testing.T) {
	_, err := NewEngine([]int{5}, false)
	assert.Error(t, err)

	_, err = NewEngine([]int{5, 5}, false)
	assert.Error(t, err)

	_, err = NewEngine([]int{0, 5}, false)
	assert.Error(t, err)

	e, err := NewEngine([]int{20, 5, 10}, false)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 10, 20}, e.Windows())
	assert.Equal(t, 5, e.FastWindow())
	assert.Equal(t, []int{10, 20}, e.SlowWindows())
}

func TestRollingMeanLenient(t *testing.T) {
	e := mustEngine(t, []int{2, 3}, false)
	ma := e.Compute(seriesFromCloses(10, 20, 30, 40))

	col := ma.Columns[3]
	// before the window fills, the mean covers the bars that exist
	assert.InDelta(t, 10, col[0], 1e-9)
	assert.InDelta(t, 15, col[1], 1e-9)
	assert.InDelta(t, 20, col[2], 1e-9)
	assert.InDelta(t, 30, col[3], 1e-9)
}

func TestRollingMeanStrict(t *testing.T) {
	e := mustEngine(t, []int{2, 3}, true)
	ma := e.Compute(seriesFromCloses(10, 20, 30, 40))

	col := ma.Columns[3]
	assert.True(t, math.IsNaN(col[0]))
	assert.True(t, math.IsNaN(col[1]))
	assert.InDelta(t, 20, col[2], 1e-9)

	assert.False(t, ma.Defined(3, 1))
	assert.True(t, ma.Defined(3, 2))
}

func TestDetectNoEventsOnShortSeries(t *testing.T) {
	e := mustEngine(t, []int{2, 3}, false)
	d := NewDetector(e, 2)

	// 4 bars, need max(windows)+lookback = 5
	events := d.Detect(contracts.Symbol{Code: "600519.SH"}, seriesFromCloses(10, 10, 10, 16))
	assert.Empty(t, events)
}

func TestDetectFiresOnCross(t *testing.T) {
	e := mustEngine(t, []int{2, 3}, false)
	d := NewDetector(e, 1)

	// at the prior bar both averages sit at 10 exactly; equality on the
	// losing side still counts as not-yet-crossed
	series := seriesFromCloses(10, 10, 10, 16)
	events := d.Detect(contracts.Symbol{Code: "600519.SH", Name: "贵州茅台"}, series)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "600519.SH", ev.Symbol)
	assert.Equal(t, series[3].Date, ev.Date)
	assert.Equal(t, 2, ev.FastWindow)
	assert.Equal(t, 3, ev.SlowWindow)
	assert.InDelta(t, 13, ev.FastValue, 1e-9)
	assert.InDelta(t, 12, ev.SlowValue, 1e-9)
	assert.Equal(t, 16.0, ev.ClosePrice)
	assert.Equal(t, contracts.StrengthStrong, ev.Strength)
}

func TestDetectNoEventWithoutCross(t *testing.T) {
	e := mustEngine(t, []int{2, 3}, false)
	d := NewDetector(e, 2)

	// monotonically falling, fast stays below slow
	events := d.Detect(contracts.Symbol{Code: "600519.SH"}, seriesFromCloses(50, 40, 30, 20, 10))
	assert.Empty(t, events)

	// flat, averages equal at every bar; equality now is not a cross
	events = d.Detect(contracts.Symbol{Code: "600519.SH"}, seriesFromCloses(10, 10, 10, 10, 10))
	assert.Empty(t, events)
}

func TestDetectStrengthGrades(t *testing.T) {
	tests := []struct {
		name string
		last float64
		want contracts.Strength
	}{
		{"strong above two percent", 16, contracts.StrengthStrong},
		{"moderate between one and two", 10.93, contracts.StrengthModerate},
		{"weak at or under one", 10.3, contracts.StrengthWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustEngine(t, []int{2, 3}, false)
			d := NewDetector(e, 1)

			events := d.Detect(contracts.Symbol{Code: "600519.SH"}, seriesFromCloses(10, 10, 10, tt.last))
			require.Len(t, events, 1)
			assert.Equal(t, tt.want, events[0].Strength)
		})
	}
}

func TestClassifyStrengthDegenerateSlow(t *testing.T) {
	assert.Equal(t, contracts.StrengthWeak, classifyStrength(1, 0))
}

func TestDetectMultipleSlowWindowsSameDay(t *testing.T) {
	e := mustEngine(t, []int{2, 3, 4}, false)
	d := NewDetector(e, 1)

	events := d.Detect(contracts.Symbol{Code: "600519.SH"}, seriesFromCloses(10, 10, 10, 10, 16))
	require.Len(t, events, 2)

	slows := []int{events[0].SlowWindow, events[1].SlowWindow}
	assert.ElementsMatch(t, []int{3, 4}, slows)
	assert.Equal(t, events[0].Date, events[1].Date)
}

func TestDetectRealisticWindows(t *testing.T) {
	e := mustEngine(t, []int{5, 10, 20}, false)
	d := NewDetector(e, 3)

	// 89 flat bars then a limit-up style spike pulls the 5-day average
	// through both slower ones on the final bar
	closes := make([]float64, 0, 90)
	for i := 0; i < 89; i++ {
		closes = append(closes, 10)
	}
	closes = append(closes, 16)
	series := seriesFromCloses(closes...)

	events := d.Detect(contracts.Symbol{Code: "600519.SH"}, series)
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.Equal(t, 5, ev.FastWindow)
		assert.Equal(t, series[89].Date, ev.Date)
	}
}

func TestSortEvents(t *testing.T) {
	d1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	events := []contracts.CrossoverEvent{
		{Symbol: "a", Date: d1, Strength: contracts.StrengthStrong},
		{Symbol: "b", Date: d2, Strength: contracts.StrengthWeak},
		{Symbol: "c", Date: d2, Strength: contracts.StrengthStrong},
		{Symbol: "d", Date: d1, Strength: contracts.StrengthWeak},
	}

	SortEvents(events)

	got := []string{events[0].Symbol, events[1].Symbol, events[2].Symbol, events[3].Symbol}
	assert.Equal(t, []string{"c", "b", "a", "d"}, got)
}
