package contracts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPriceSeriesNormalize(t *testing.T) {
	s := PriceSeries{
		{Date: day("2025-01-03"), Close: 3},
		{Date: day("2025-01-01"), Close: 1},
		{Date: day("2025-01-02"), Close: 2},
		{Date: day("2025-01-02"), Close: 99},
	}

	out := s.Normalize()

	assert.Len(t, out, 3)
	assert.Equal(t, day("2025-01-01"), out[0].Date)
	assert.Equal(t, day("2025-01-03"), out[2].Date)
	// duplicate day keeps the first occurrence after the stable sort
	assert.Equal(t, 2.0, out[1].Close)
}

func TestPriceSeriesClip(t *testing.T) {
	s := PriceSeries{
		{Date: day("2025-01-01")},
		{Date: day("2025-01-02")},
		{Date: day("2025-01-03")},
	}

	out := s.Clip(day("2025-01-02"), day("2025-01-03"))
	assert.Len(t, out, 2)
	assert.Equal(t, day("2025-01-02"), out[0].Date)
}

func TestPriceSeriesIsUsable(t *testing.T) {
	short := make(PriceSeries, MinUsableBars-1)
	assert.False(t, short.IsUsable())

	ok := make(PriceSeries, MinUsableBars)
	assert.True(t, ok.IsUsable())
}

func TestStrengthRank(t *testing.T) {
	assert.Greater(t, StrengthStrong.Rank(), StrengthModerate.Rank())
	assert.Greater(t, StrengthModerate.Rank(), StrengthWeak.Rank())
	assert.Equal(t, 0, Strength("bogus").Rank())
}

func TestParamsFloat64(t *testing.T) {
	p := Params{"a": 1.5, "b": 2, "c": "nope"}

	assert.Equal(t, 1.5, p.Float64("a", 0))
	assert.Equal(t, 2.0, p.Float64("b", 0))
	assert.Equal(t, 9.0, p.Float64("c", 9))
	assert.Equal(t, 9.0, p.Float64("missing", 9))
}

func TestParamsMerge(t *testing.T) {
	base := Params{"a": 1, "b": 2}
	out := base.Merge(Params{"b": 3, "c": 4})

	assert.Equal(t, 1, out["a"])
	assert.Equal(t, 3, out["b"])
	assert.Equal(t, 4, out["c"])
	// base is untouched
	assert.Equal(t, 2, base["b"])
}

func TestFloat(t *testing.T) {
	assert.Equal(t, 5.0, Float(nil, 5))
	assert.Equal(t, 1.0, Float(FloatPtr(1), 5))
}
