package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/goldcross/internal/contracts"
	"github.com/wonny/goldcross/internal/report"
)

var pickCmd = &cobra.Command{
	Use:   "pick [strategy]",
	Short: "Rank stocks with a factor strategy",
	Long: `Runs one selection strategy over a fresh fundamental snapshot.

Available strategies: value, growth, momentum, quality, multi_factor.

Example:
  go run ./cmd/goldcross pick value
  go run ./cmd/goldcross pick multi_factor --top 10 --save`,
	Args: cobra.ExactArgs(1),
	RunE: runPick,
}

var (
	pickTop  int
	pickSave bool
	pickJSON bool
)

func init() {
	rootCmd.AddCommand(pickCmd)

	pickCmd.Flags().IntVar(&pickTop, "top", 0, "override the strategy's result size")
	pickCmd.Flags().BoolVar(&pickSave, "save", false, "persist the ranking to the database")
	pickCmd.Flags().BoolVar(&pickJSON, "json", false, "print the raw result as JSON")
}

func runPick(cmd *cobra.Command, args []string) error {
	name := args[0]

	a, err := newApp(pickSave)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, ok := a.registry.Get(name); !ok {
		return fmt.Errorf("unknown strategy %q, available: %v", name, a.registry.Names())
	}

	params := contracts.Params{}
	if pickTop > 0 {
		params["top_n"] = pickTop
	}

	ctx := cmd.Context()
	result, err := a.screener.Pick(ctx, name, params)
	if err != nil {
		return fmt.Errorf("pick: %w", err)
	}

	if pickJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		fmt.Print(report.RenderRanking(result))
	}

	if pickSave {
		if a.repo == nil {
			return fmt.Errorf("--save requires DATABASE_URL")
		}
		if err := a.repo.SaveRanking(ctx, result); err != nil {
			return fmt.Errorf("save ranking: %w", err)
		}
		a.log.WithField("selected", len(result.Selected)).Info("Ranking saved")
	}
	return nil
}
