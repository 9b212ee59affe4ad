// Package jobs holds the concrete scheduled jobs.
package jobs

import (
	"context"

	"github.com/wonny/goldcross/internal/report"
	"github.com/wonny/goldcross/internal/screener"
	"github.com/wonny/goldcross/pkg/logger"
)

// ScreenJob runs the golden cross screen after the A-share close.
type ScreenJob struct {
	screener *screener.Screener
	repo     *report.Repository
	logger   *logger.Logger
}

// NewScreenJob builds the job. repo may be nil; the run then only logs.
func NewScreenJob(s *screener.Screener, repo *report.Repository, log *logger.Logger) *ScreenJob {
	return &ScreenJob{screener: s, repo: repo, logger: log}
}

func (j *ScreenJob) Name() string { return "daily_screen" }

// 15:30 CST weekdays, half an hour after the Shanghai close
func (j *ScreenJob) Schedule() string { return "0 30 15 * * MON-FRI" }

func (j *ScreenJob) Run(ctx context.Context) error {
	result, err := j.screener.Screen(ctx)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"scanned": result.Scanned,
		"events":  len(result.Events),
	}).Info("Daily screen finished")

	if j.repo != nil && len(result.Events) > 0 {
		if err := j.repo.SaveEvents(ctx, result.RunAt, result.Events); err != nil {
			return err
		}
	}
	return nil
}
