package commands

import (
	"fmt"

	"github.com/wonny/goldcross/internal/analysis"
	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/internal/marketdata"
	"github.com/wonny/goldcross/internal/marketdata/providers"
	"github.com/wonny/goldcross/internal/report"
	"github.com/wonny/goldcross/internal/screener"
	"github.com/wonny/goldcross/internal/strategy"
	"github.com/wonny/goldcross/pkg/config"
	"github.com/wonny/goldcross/pkg/database"
	"github.com/wonny/goldcross/pkg/httputil"
	"github.com/wonny/goldcross/pkg/logger"
	"github.com/wonny/goldcross/pkg/redis"
)

// app bundles the constructed dependency graph of one command run.
// SSOT: dependency wiring happens in newApp only
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	redis    *redis.Client
	db       *database.DB
	screener *screener.Screener
	registry *strategy.Registry
	repo     *report.Repository
}

// newApp builds everything a command needs. The database is optional:
// with withDB false, or no DATABASE_URL configured, repo stays nil and
// persistence is skipped.
func newApp(withDB bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if maxSymbols > 0 {
		cfg.Screener.MaxSymbols = maxSymbols
	}

	log := logger.New(cfg)

	redisClient, err := redis.New(cfg)
	if err != nil {
		// screening still works without shared cache and rate limits
		log.WithError(err).Warn("Redis unavailable, using in-process cache")
		cfg.Redis.Enabled = false
		redisClient, _ = redis.New(cfg)
	}

	var store marketdata.Store
	if redisClient.Enabled() {
		store = redis.NewCache(redisClient, "goldcross")
	} else {
		store = marketdata.NewMemoryStore()
	}
	cache := marketdata.NewAcquisitionCache(store, log)

	var limiter *redis.RateLimiter
	if redisClient.Enabled() {
		limiter = redis.NewRateLimiter(redisClient, "goldcross")
	}
	newClient := func(rl redis.RateLimitConfig) *httputil.Client {
		client := httputil.New(cfg, log)
		if limiter != nil {
			client = client.WithRateLimiter(limiter, rl)
		}
		return client
	}

	eastmoney := providers.NewEastmoney(newClient(redis.EastmoneyRateLimit), log, cfg.Providers.EastmoneyBaseURL)
	tencent := providers.NewTencent(newClient(redis.TencentRateLimit), log, cfg.Providers.TencentBaseURL)
	sina := providers.NewSina(newClient(redis.SinaRateLimit), log, cfg.Providers.SinaBaseURL)
	listing := providers.NewListingScraper(newClient(redis.EastmoneyRateLimit), log, "")

	fetcher := marketdata.NewFetcher(
		cache,
		[]contracts.SourceAdapter{eastmoney, tencent, sina},
		[]contracts.UniverseSource{eastmoney, listing},
		log,
	)

	engine, err := analysis.NewEngine(cfg.Screener.MAWindows, strictWindows)
	if err != nil {
		return nil, fmt.Errorf("moving average engine: %w", err)
	}
	detector := analysis.NewDetector(engine, cfg.Screener.LookbackDays)

	registry := strategy.DefaultRegistry(log)
	scr := screener.New(fetcher, eastmoney, detector, registry, cfg.Screener, log)

	a := &app{
		cfg:      cfg,
		log:      log,
		redis:    redisClient,
		screener: scr,
		registry: registry,
	}

	if withDB && cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.db = db
		a.repo = report.NewRepository(db.Pool)
	}

	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
