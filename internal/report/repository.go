// Package report persists and renders screening results. Persistence
// is a boundary concern; a run completes fine without a database.
package report

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/goldcross/internal/contracts"
)

// Repository writes screening output to PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveEvents stores the crossover rows of one run.
func (r *Repository) SaveEvents(ctx context.Context, runAt time.Time, events []contracts.CrossoverEvent) error {
	query := `
		INSERT INTO signals.crossover_events
			(run_at, stock_code, stock_name, event_date, fast_window, slow_window,
			 fast_value, slow_value, close_price, strength)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (run_at, stock_code, event_date, slow_window) DO NOTHING
	`

	for _, ev := range events {
		_, err := r.pool.Exec(ctx, query,
			runAt, ev.Symbol, ev.Name, ev.Date, ev.FastWindow, ev.SlowWindow,
			ev.FastValue, ev.SlowValue, ev.ClosePrice, string(ev.Strength),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// SaveRanking stores one strategy's ranked selection.
func (r *Repository) SaveRanking(ctx context.Context, result *contracts.StrategyResult) error {
	query := `
		INSERT INTO signals.factor_rankings
			(executed_at, strategy, rank, stock_code, stock_name, score)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (executed_at, strategy, stock_code) DO UPDATE SET
			rank = EXCLUDED.rank,
			score = EXCLUDED.score
	`

	for i, fs := range result.Selected {
		_, err := r.pool.Exec(ctx, query,
			result.ExecutedAt, result.StrategyName, i+1, fs.Symbol, fs.Name, fs.Score,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// LatestEvents returns the most recent crossover rows, newest first.
func (r *Repository) LatestEvents(ctx context.Context, limit int) ([]contracts.CrossoverEvent, error) {
	query := `
		SELECT stock_code, stock_name, event_date, fast_window, slow_window,
		       fast_value, slow_value, close_price, strength
		FROM signals.crossover_events
		ORDER BY run_at DESC, event_date DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []contracts.CrossoverEvent
	for rows.Next() {
		var ev contracts.CrossoverEvent
		var strength string
		if err := rows.Scan(
			&ev.Symbol, &ev.Name, &ev.Date, &ev.FastWindow, &ev.SlowWindow,
			&ev.FastValue, &ev.SlowValue, &ev.ClosePrice, &strength,
		); err != nil {
			return nil, err
		}
		ev.Strength = contracts.Strength(strength)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// LatestRanking returns the most recent ranking for a strategy.
func (r *Repository) LatestRanking(ctx context.Context, strategyName string, limit int) ([]contracts.FactorScore, error) {
	query := `
		SELECT stock_code, stock_name, score
		FROM signals.factor_rankings
		WHERE strategy = $1
		  AND executed_at = (
			SELECT MAX(executed_at) FROM signals.factor_rankings WHERE strategy = $1
		  )
		ORDER BY rank ASC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, strategyName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []contracts.FactorScore
	for rows.Next() {
		var fs contracts.FactorScore
		if err := rows.Scan(&fs.Symbol, &fs.Name, &fs.Score); err != nil {
			return nil, err
		}
		scores = append(scores, fs)
	}
	return scores, rows.Err()
}
