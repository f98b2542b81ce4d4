package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyFile string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kabuscan",
	Short: "kabuscan - 日経225スイングトレード銘柄スキャナー",
	Long: `kabuscan

日経225銘柄をテクニカル+バリュエーションで採点し、
スイングトレード向けの魅力度ランキングと売買プランを出します。

Usage:
  go run ./cmd/kabuscan [command]

Examples:
  go run ./cmd/kabuscan rank
  go run ./cmd/kabuscan analyze 7203
  go run ./cmd/kabuscan api
  go run ./cmd/kabuscan scheduler`,
}

// Execute runs the root command. Called once from main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy YAML file (default is built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
