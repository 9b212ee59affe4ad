package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/goldcross/internal/report"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run the golden cross screen over the A-share universe",
	Long: `Fetches the symbol universe, pulls daily history per symbol through
the provider fallback chain and reports every fast-over-slow moving
average cross within the recent lookback window.

Example:
  go run ./cmd/goldcross screen
  go run ./cmd/goldcross screen --max 100 --save
  go run ./cmd/goldcross screen --json`,
	RunE: runScreen,
}

var (
	screenSave bool
	screenJSON bool
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().BoolVar(&screenSave, "save", false, "persist events to the database")
	screenCmd.Flags().BoolVar(&screenJSON, "json", false, "print the raw result as JSON")
}

func runScreen(cmd *cobra.Command, _ []string) error {
	a, err := newApp(screenSave)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	result, err := a.screener.Screen(ctx)
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}

	if screenJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		fmt.Print(report.RenderScreen(result))
	}

	if screenSave {
		if a.repo == nil {
			return fmt.Errorf("--save requires DATABASE_URL")
		}
		if err := a.repo.SaveEvents(ctx, result.RunAt, result.Events); err != nil {
			return fmt.Errorf("save events: %w", err)
		}
		a.log.WithField("events", len(result.Events)).Info("Events saved")
	}
	return nil
}
