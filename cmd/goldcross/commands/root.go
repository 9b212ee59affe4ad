package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	maxSymbols    int
	strictWindows bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "goldcross",
	Short: "A-share golden cross screener and factor ranker",
	Long: `goldcross screens the A-share market for golden cross signals and
ranks stocks by value, growth, momentum and quality factors.

Usage:
  go run ./cmd/goldcross [command]

Examples:
  go run ./cmd/goldcross screen
  go run ./cmd/goldcross screen --max 100
  go run ./cmd/goldcross pick value
  go run ./cmd/goldcross pick multi_factor --save
  go run ./cmd/goldcross api
  go run ./cmd/goldcross scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().IntVar(&maxSymbols, "max", 0, "cap the universe to the first N symbols (0 = all)")
	rootCmd.PersistentFlags().BoolVar(&strictWindows, "strict-windows", false,
		"leave moving averages undefined until a window fills instead of averaging the bars available")
}
