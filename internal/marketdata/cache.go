package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/pkg/logger"
)

const (
	UniverseTTL = 24 * time.Hour
	SeriesTTL   = 6 * time.Hour
)

// envelope wraps every cached payload with its write time so staleness
// is judged on our own clock rather than the backend's TTL alone.
type envelope struct {
	WrittenAt time.Time       `json:"written_at"`
	Payload   json.RawMessage `json:"payload"`
}

// AcquisitionCache is the read-through cache in front of the quote
// providers. Reads never fail the caller: a corrupt, stale or too-short
// entry is reported as a plain miss and the entry is dropped.
type AcquisitionCache struct {
	store Store
	log   *logger.Logger
	now   func() time.Time
}

func NewAcquisitionCache(store Store, log *logger.Logger) *AcquisitionCache {
	return &AcquisitionCache{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

func universeKey() string          { return "universe:all" }
func seriesKey(code string) string { return fmt.Sprintf("series:%s", code) }

// GetUniverse returns the cached symbol list, or ok=false on any miss.
func (c *AcquisitionCache) GetUniverse(ctx context.Context) ([]contracts.Symbol, bool) {
	payload, ok := c.read(ctx, universeKey(), UniverseTTL)
	if !ok {
		return nil, false
	}

	var symbols []contracts.Symbol
	if err := json.Unmarshal(payload, &symbols); err != nil {
		c.drop(ctx, universeKey(), err)
		return nil, false
	}
	if len(symbols) == 0 {
		return nil, false
	}
	return symbols, true
}

func (c *AcquisitionCache) PutUniverse(ctx context.Context, symbols []contracts.Symbol) {
	c.write(ctx, universeKey(), symbols, UniverseTTL)
}

// GetSeries returns the cached price series for code. A series shorter
// than the usability minimum is treated as a miss even when fresh.
func (c *AcquisitionCache) GetSeries(ctx context.Context, code string) (contracts.PriceSeries, bool) {
	payload, ok := c.read(ctx, seriesKey(code), SeriesTTL)
	if !ok {
		return nil, false
	}

	var series contracts.PriceSeries
	if err := json.Unmarshal(payload, &series); err != nil {
		c.drop(ctx, seriesKey(code), err)
		return nil, false
	}
	if !series.IsUsable() {
		return nil, false
	}
	return series, true
}

func (c *AcquisitionCache) PutSeries(ctx context.Context, code string, series contracts.PriceSeries) {
	if !series.IsUsable() {
		return
	}
	c.write(ctx, seriesKey(code), series, SeriesTTL)
}

func (c *AcquisitionCache) read(ctx context.Context, key string, ttl time.Duration) (json.RawMessage, bool) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.drop(ctx, key, err)
		return nil, false
	}
	if c.now().Sub(env.WrittenAt) >= ttl {
		return nil, false
	}
	return env.Payload, true
}

func (c *AcquisitionCache) write(ctx context.Context, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache marshal failed")
		return
	}

	raw, err := json.Marshal(envelope{WrittenAt: c.now(), Payload: payload})
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache marshal failed")
		return
	}

	if err := c.store.Set(ctx, key, raw, ttl); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

func (c *AcquisitionCache) drop(ctx context.Context, key string, cause error) {
	c.log.WithError(cause).WithField("key", key).Warn("dropping corrupt cache entry")
	_ = c.store.Delete(ctx, key)
}
