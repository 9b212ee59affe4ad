package contracts

import (
	"sort"
	"time"
)

// MinUsableBars is the minimum number of daily bars a price series must
// hold before any consumer (cache validity, fetcher acceptance, analysis)
// treats it as usable.
const MinUsableBars = 20

// Symbol identifies a listed stock
// Code is market-qualified, e.g. "600519.SH" or "000001.SZ"
type Symbol struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// PriceBar represents one daily OHLCV bar. Date carries the calendar day
// only; any intraday component is truncated by the adapters.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries is an ordered sequence of daily bars, strictly ascending by
// date with no duplicate dates. Adapters are responsible for establishing
// the ordering invariant via Normalize before the series leaves them.
type PriceSeries []PriceBar

// Normalize sorts the series ascending by date and drops duplicate dates,
// keeping the first bar seen for a day.
func (s PriceSeries) Normalize() PriceSeries {
	if len(s) == 0 {
		return s
	}

	sorted := make(PriceSeries, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	out := sorted[:1]
	for _, bar := range sorted[1:] {
		if bar.Date.Equal(out[len(out)-1].Date) {
			continue
		}
		out = append(out, bar)
	}
	return out
}

// Clip returns the bars within [from, to] inclusive
func (s PriceSeries) Clip(from, to time.Time) PriceSeries {
	out := make(PriceSeries, 0, len(s))
	for _, bar := range s {
		if bar.Date.Before(from) || bar.Date.After(to) {
			continue
		}
		out = append(out, bar)
	}
	return out
}

// Closes returns the close column
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

// Last returns the most recent bar; ok is false for an empty series
func (s PriceSeries) Last() (PriceBar, bool) {
	if len(s) == 0 {
		return PriceBar{}, false
	}
	return s[len(s)-1], true
}

// IsUsable reports whether the series meets the minimum-length invariant
func (s PriceSeries) IsUsable() bool {
	return len(s) >= MinUsableBars
}
