package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	assert.InDelta(t, 4, SMA(values, 3), 1e-9)
	assert.InDelta(t, 3, SMA(values, 5), 1e-9)
	assert.Equal(t, 0.0, SMA(values, 6))
	assert.Equal(t, 0.0, SMA(nil, 3))
}

func TestEMA(t *testing.T) {
	flat := []float64{10, 10, 10, 10, 10}
	assert.InDelta(t, 10, EMA(flat, 3), 1e-9)

	// seed = avg(1,2,3) = 2, k = 0.5
	// then 4: 4*0.5 + 2*0.5 = 3; then 5: 5*0.5 + 3*0.5 = 4
	values := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 4, EMA(values, 3), 1e-9)

	assert.Equal(t, 0.0, EMA(values, 6))
}

func TestRSI(t *testing.T) {
	// 14 changes, alternating +2 and -1: gains 14, losses 7, RS = 2
	values := make([]float64, 15)
	values[0] = 100
	for i := 1; i < len(values); i++ {
		if i%2 == 1 {
			values[i] = values[i-1] + 2
		} else {
			values[i] = values[i-1] - 1
		}
	}
	assert.InDelta(t, 100-100.0/3, RSI(values, 14), 1e-9)

	allUp := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	assert.Equal(t, 100.0, RSI(allUp, 14))

	flat := make([]float64, 15)
	assert.Equal(t, 50.0, RSI(flat, 14))

	// insufficient history is neutral
	assert.Equal(t, 50.0, RSI([]float64{1, 2}, 14))
}

func TestMACDSign(t *testing.T) {
	up := make([]float64, 40)
	down := make([]float64, 40)
	for i := range up {
		up[i] = 100 + float64(i)
		down[i] = 100 - float64(i)
	}

	assert.Greater(t, MACD(up), 0.0)
	assert.Less(t, MACD(down), 0.0)
	assert.Equal(t, 0.0, MACD(up[:20]))
}

func TestPeriodReturn(t *testing.T) {
	values := []float64{100, 105, 110}

	ret, ok := PeriodReturn(values, 2)
	require.True(t, ok)
	assert.InDelta(t, 10, ret, 1e-9)

	_, ok = PeriodReturn(values, 3)
	assert.False(t, ok)

	_, ok = PeriodReturn([]float64{0, 5}, 1)
	assert.False(t, ok)
}
