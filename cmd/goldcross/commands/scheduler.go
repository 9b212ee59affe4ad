package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/goldcross/internal/scheduler"
	"github.com/wonny/goldcross/internal/scheduler/jobs"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the screening jobs on their cron schedules",
	Long: `Starts the in-process scheduler with the recurring jobs:

  daily_screen   - golden cross screen after the close (15:30 CST, weekdays)
  daily_ranking  - multi-factor ranking refresh (16:00 CST, weekdays)

Example:
  go run ./cmd/goldcross scheduler
  go run ./cmd/goldcross scheduler --run-now daily_screen`,
	RunE: runScheduler,
}

var runNow string

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().StringVar(&runNow, "run-now", "", "trigger a job immediately on startup")
}

func runScheduler(_ *cobra.Command, _ []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	sched := scheduler.New(a.log)
	for _, job := range []scheduler.Job{
		jobs.NewScreenJob(a.screener, a.repo, a.log),
		jobs.NewRankingJob(a.screener, a.repo, a.log),
	} {
		if err := sched.AddJob(job); err != nil {
			return err
		}
	}

	sched.Start()
	defer sched.Stop()

	if runNow != "" {
		if err := sched.RunJob(runNow); err != nil {
			return err
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	a.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	return nil
}
