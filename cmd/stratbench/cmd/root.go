package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stratbench",
	Short: "A strategy backtesting and scoring workbench",
	Long: `Stratbench replays historical price data through pluggable trading
strategies, simulates execution with realistic frictions, and scores the
results on a 0-100 composite scale.

It provides tools for:
  - Backtesting strategies against historical bar data (CSV, xz, zip)
  - Scoring runs on performance, risk, and consistency
  - Ranking competing strategies side by side
  - Journaling completed runs to SQLite or CSV
  - Scheduled re-scans of a strategy roster`,
}

var logLevel string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}
