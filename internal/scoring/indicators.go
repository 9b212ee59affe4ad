// Package scoring implements the factor strategies (value, growth,
// momentum, quality) and the weighted multi-factor combiner.
package scoring

// SMA is the simple average of the last period values. Returns 0 when
// fewer than period values exist.
func SMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}
	var sum float64
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period)
}

// EMA is the exponential moving average with smoothing 2/(period+1),
// seeded with the simple average of the first period values.
func EMA(values []float64, period int) float64 {
	if period <= 0 || len(values) < period {
		return 0
	}

	var seed float64
	for _, v := range values[:period] {
		seed += v
	}
	ema := seed / float64(period)

	k := 2.0 / float64(period+1)
	for _, v := range values[period:] {
		ema = v*k + ema*(1-k)
	}
	return ema
}

// RSI is the simple-average relative strength index over the last
// period bar-to-bar changes. Returns the neutral 50 when history is
// insufficient, and 100 when there are gains but no losses.
func RSI(values []float64, period int) float64 {
	if period <= 0 || len(values) < period+1 {
		return 50
	}

	var gains, losses float64
	start := len(values) - period
	for i := start; i < len(values); i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	if losses == 0 {
		if gains == 0 {
			return 50
		}
		return 100
	}

	rs := (gains / float64(period)) / (losses / float64(period))
	return 100 - 100/(1+rs)
}

// MACD is the difference of the 12 and 26 period EMAs.
func MACD(values []float64) float64 {
	if len(values) < 26 {
		return 0
	}
	return EMA(values, 12) - EMA(values, 26)
}

// PeriodReturn is the percentage change over the last bars intervals.
// ok is false when history is insufficient.
func PeriodReturn(values []float64, bars int) (ret float64, ok bool) {
	if bars <= 0 || len(values) < bars+1 {
		return 0, false
	}
	base := values[len(values)-1-bars]
	if base == 0 {
		return 0, false
	}
	return (values[len(values)-1]/base - 1) * 100, true
}
