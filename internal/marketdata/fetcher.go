package marketdata

import (
	"context"

	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/pkg/logger"
)

// Fetcher resolves market data through the cache first and then walks a
// fixed, ordered list of upstream sources. The first source that
// returns usable data wins; results from different sources are never
// merged. Individual source failures are logged and swallowed.
type Fetcher struct {
	cache           *AcquisitionCache
	seriesSources   []contracts.SourceAdapter
	universeSources []contracts.UniverseSource
	log             *logger.Logger
}

func NewFetcher(
	cache *AcquisitionCache,
	seriesSources []contracts.SourceAdapter,
	universeSources []contracts.UniverseSource,
	log *logger.Logger,
) *Fetcher {
	return &Fetcher{
		cache:           cache,
		seriesSources:   seriesSources,
		universeSources: universeSources,
		log:             log,
	}
}

// Universe returns the screening universe. The source chain never comes
// back empty: when every source fails, the built-in fallback list is
// returned. Only genuinely fetched universes are cached.
func (f *Fetcher) Universe(ctx context.Context) ([]contracts.Symbol, bool, error) {
	if symbols, ok := f.cache.GetUniverse(ctx); ok {
		return symbols, true, nil
	}

	for _, src := range f.universeSources {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		symbols, err := src.FetchUniverse(ctx)
		if err != nil {
			f.log.WithError(err).WithField("source", src.Name()).Warn("universe source failed")
			continue
		}
		if len(symbols) == 0 {
			f.log.WithField("source", src.Name()).Warn("universe source returned no symbols")
			continue
		}

		f.log.WithFields(map[string]interface{}{
			"source":  src.Name(),
			"symbols": len(symbols),
		}).Info("universe fetched")
		f.cache.PutUniverse(ctx, symbols)
		return symbols, false, nil
	}

	f.log.Warn("all universe sources failed, using built-in fallback list")
	return FallbackUniverse(), false, nil
}

// Series returns up to days of daily bars for code. Sources are tried
// in order; a source that errors or returns fewer than the usable
// minimum of bars is skipped. cached reports whether the cache served
// the result.
func (f *Fetcher) Series(ctx context.Context, code string, days int) (contracts.PriceSeries, bool, error) {
	if series, ok := f.cache.GetSeries(ctx, code); ok {
		return series, true, nil
	}

	var lastErr error
	for _, src := range f.seriesSources {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		series, err := src.FetchSeries(ctx, code, days)
		if err != nil {
			lastErr = err
			f.log.WithError(err).WithFields(map[string]interface{}{
				"source": src.Name(),
				"code":   code,
			}).Debug("series source failed")
			continue
		}

		series = series.Normalize()
		if !series.IsUsable() {
			f.log.WithFields(map[string]interface{}{
				"source": src.Name(),
				"code":   code,
				"bars":   len(series),
			}).Debug("series too short, trying next source")
			continue
		}

		f.cache.PutSeries(ctx, code, series)
		return series, false, nil
	}

	if lastErr != nil {
		return nil, false, &SourceExhaustedError{Code: code, Last: lastErr}
	}
	return nil, false, &SourceExhaustedError{Code: code}
}

// SourceExhaustedError reports that every configured source failed for
// one symbol. Last holds the final source error when one exists.
type SourceExhaustedError struct {
	Code string
	Last error
}

func (e *SourceExhaustedError) Error() string {
	if e.Last != nil {
		return "all sources failed for " + e.Code + ": " + e.Last.Error()
	}
	return "all sources failed for " + e.Code
}

func (e *SourceExhaustedError) Unwrap() error { return e.Last }
