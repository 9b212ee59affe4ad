package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/pkg/logger"
)

func testSeries(n int) contracts.PriceSeries {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(contracts.PriceSeries, n)
	for i := range series {
		series[i] = contracts.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Close:  10 + float64(i),
			Volume: 1000,
		}
	}
	return series
}

func newTestCache() (*AcquisitionCache, *MemoryStore) {
	store := NewMemoryStore()
	return NewAcquisitionCache(store, logger.Nop()), store
}

func TestCacheSeriesRoundTrip(t *testing.T) {
	cache, _ := newTestCache()
	ctx := context.Background()

	series := testSeries(30)
	cache.PutSeries(ctx, "600519.SH", series)

	got, ok := cache.GetSeries(ctx, "600519.SH")
	require.True(t, ok)
	assert.Len(t, got, 30)
	assert.Equal(t, series[29].Close, got[29].Close)
}

func TestCacheSeriesMissWhenStale(t *testing.T) {
	cache, _ := newTestCache()
	ctx := context.Background()

	cache.PutSeries(ctx, "600519.SH", testSeries(30))

	// advance the cache clock past the series TTL
	cache.now = func() time.Time { return time.Now().Add(SeriesTTL + time.Minute) }

	_, ok := cache.GetSeries(ctx, "600519.SH")
	assert.False(t, ok)
}

func TestCacheSeriesRejectsShortWrite(t *testing.T) {
	cache, _ := newTestCache()
	ctx := context.Background()

	cache.PutSeries(ctx, "600519.SH", testSeries(contracts.MinUsableBars-1))

	_, ok := cache.GetSeries(ctx, "600519.SH")
	assert.False(t, ok)
}

func TestCacheCorruptEntryIsMissAndDropped(t *testing.T) {
	cache, store := newTestCache()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, seriesKey("600519.SH"), []byte("not json"), SeriesTTL))

	_, ok := cache.GetSeries(ctx, "600519.SH")
	assert.False(t, ok)

	_, present, err := store.Get(ctx, seriesKey("600519.SH"))
	require.NoError(t, err)
	assert.False(t, present, "corrupt entry should be deleted")
}

func TestCacheUniverseRoundTrip(t *testing.T) {
	cache, _ := newTestCache()
	ctx := context.Background()

	symbols := []contracts.Symbol{{Code: "600519.SH", Name: "贵州茅台"}}
	cache.PutUniverse(ctx, symbols)

	got, ok := cache.GetUniverse(ctx)
	require.True(t, ok)
	assert.Equal(t, symbols, got)
}

func TestCacheUniverseMissWhenStale(t *testing.T) {
	cache, _ := newTestCache()
	ctx := context.Background()

	cache.PutUniverse(ctx, []contracts.Symbol{{Code: "600519.SH"}})
	cache.now = func() time.Time { return time.Now().Add(UniverseTTL + time.Minute) }

	_, ok := cache.GetUniverse(ctx)
	assert.False(t, ok)
}

func TestMemoryStoreTTL(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Hour))
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
