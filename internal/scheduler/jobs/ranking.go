package jobs

import (
	"context"

	"github.com/wonny/goldcross/internal/report"
	"github.com/wonny/goldcross/internal/screener"
	"github.com/wonny/goldcross/pkg/logger"
)

// RankingJob refreshes the multi-factor ranking once per trading day.
type RankingJob struct {
	screener *screener.Screener
	repo     *report.Repository
	logger   *logger.Logger
}

func NewRankingJob(s *screener.Screener, repo *report.Repository, log *logger.Logger) *RankingJob {
	return &RankingJob{screener: s, repo: repo, logger: log}
}

func (j *RankingJob) Name() string { return "daily_ranking" }

// after the screen job, leaving it time to warm the series cache
func (j *RankingJob) Schedule() string { return "0 0 16 * * MON-FRI" }

func (j *RankingJob) Run(ctx context.Context) error {
	result, err := j.screener.Pick(ctx, "multi_factor", nil)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"selected": len(result.Selected),
	}).Info("Daily ranking finished")

	if j.repo != nil && len(result.Selected) > 0 {
		if err := j.repo.SaveRanking(ctx, result); err != nil {
			return err
		}
	}
	return nil
}
