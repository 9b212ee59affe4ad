// Package screener drives a full screening run: universe resolution,
// paced series fetching, crossover detection and factor ranking.
package screener

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/goldcross/internal/analysis"
	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/internal/marketdata"
	"github.com/wonny/goldcross/internal/strategy"
	"github.com/wonny/goldcross/pkg/config"
	"github.com/wonny/goldcross/pkg/logger"
)

// Screener owns one run's lifecycle. All per-run state (series, events,
// rankings) lives and dies inside a single call; only the cache behind
// the fetcher persists across runs.
type Screener struct {
	fetcher      *marketdata.Fetcher
	fundamentals contracts.FundamentalsSource
	detector     *analysis.Detector
	registry     *strategy.Registry
	limiter      *rate.Limiter
	cfg          config.ScreenerConfig
	log          *logger.Logger
}

func New(
	fetcher *marketdata.Fetcher,
	fundamentals contracts.FundamentalsSource,
	detector *analysis.Detector,
	registry *strategy.Registry,
	cfg config.ScreenerConfig,
	log *logger.Logger,
) *Screener {
	return &Screener{
		fetcher:      fetcher,
		fundamentals: fundamentals,
		detector:     detector,
		registry:     registry,
		limiter:      rate.NewLimiter(rate.Every(cfg.PaceDelay), 1),
		cfg:          cfg,
		log:          log,
	}
}

// Screen walks the universe symbol by symbol, detecting golden crosses.
// One bad symbol never aborts the run; it is counted and skipped.
// Events come back newest first, strongest first within a day.
func (s *Screener) Screen(ctx context.Context) (*contracts.ScreenResult, error) {
	start := time.Now()

	universe, _, err := s.fetcher.Universe(ctx)
	if err != nil {
		return nil, err
	}

	symbols := universe
	if s.cfg.MaxSymbols > 0 && len(symbols) > s.cfg.MaxSymbols {
		// capped in listing order, not sampled
		symbols = symbols[:s.cfg.MaxSymbols]
	}

	result := &contracts.ScreenResult{
		RunAt:    start,
		Universe: len(universe),
	}

	for _, symbol := range symbols {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		series, cached, err := s.fetcher.Series(ctx, symbol.Code, s.cfg.FetchDays)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.WithError(err).WithField("code", symbol.Code).Warn("symbol skipped")
			result.Failed++
			result.FailedCodes = append(result.FailedCodes, symbol.Code)
			continue
		}
		if cached {
			result.FromCacheHit++
		}

		result.Scanned++
		if len(series) < s.cfg.MinHistoryDays {
			continue
		}

		result.Events = append(result.Events, s.detector.Detect(symbol, series)...)
	}

	analysis.SortEvents(result.Events)
	result.ElapsedMS = time.Since(start).Milliseconds()

	s.log.WithFields(map[string]interface{}{
		"universe":  result.Universe,
		"scanned":   result.Scanned,
		"failed":    result.Failed,
		"events":    len(result.Events),
		"cache_hit": result.FromCacheHit,
		"elapsed":   time.Since(start),
	}).Info("screen finished")
	return result, nil
}

// seriesHungry lists strategies that read price history, not just the
// fundamental snapshot.
var seriesHungry = map[string]bool{
	"momentum":     true,
	"multi_factor": true,
}

// Pick runs one factor strategy over the fundamental snapshot. For
// strategies that need price history the series are fetched, paced and
// cached like a screening run.
func (s *Screener) Pick(ctx context.Context, name string, params contracts.Params) (*contracts.StrategyResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	stocks, err := s.fundamentals.FetchFundamentals(ctx)
	if err != nil {
		return nil, err
	}
	if s.cfg.MaxSymbols > 0 && len(stocks) > s.cfg.MaxSymbols {
		stocks = stocks[:s.cfg.MaxSymbols]
	}

	if seriesHungry[name] {
		for i := range stocks {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, err
			}
			series, _, err := s.fetcher.Series(ctx, stocks[i].Symbol.Code, s.cfg.FetchDays)
			if err != nil {
				// the strategy treats a missing series as exclusion
				continue
			}
			stocks[i].Series = series
		}
	}

	return s.registry.Execute(ctx, name, stocks, params)
}
