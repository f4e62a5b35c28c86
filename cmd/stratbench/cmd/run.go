package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stratbench/stratbench/advisory"
	"github.com/stratbench/stratbench/backtest"
	"github.com/stratbench/stratbench/journal"
	"github.com/stratbench/stratbench/market/data"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single strategy backtest",
	Long: `Run replays a historical bar file through one strategy and prints the
scored result.

Example:
  stratbench run --data data/AAPL.csv --strategy sma-cross --param fast=10 --param slow=30`,
	RunE: runRun,
}

var (
	runDataPath   string
	runStrategy   string
	runSymbol     string
	runCapital    float64
	runStart      string
	runEnd        string
	runParams     []string
	runDBPath     string
	runAdvisorURL string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runDataPath, "data", "d", "", "path to bar data (.csv, .csv.xz, .zip) (required)")
	runCmd.Flags().StringVarP(&runStrategy, "strategy", "s", "sma-cross", "strategy name")
	runCmd.Flags().StringVar(&runSymbol, "symbol", "UNKNOWN", "symbol label for the run")
	runCmd.Flags().Float64VarP(&runCapital, "capital", "c", 100_000, "initial capital")
	runCmd.Flags().StringVar(&runStart, "start", "", "start date YYYY-MM-DD (inclusive)")
	runCmd.Flags().StringVar(&runEnd, "end", "", "end date YYYY-MM-DD (inclusive)")
	runCmd.Flags().StringArrayVarP(&runParams, "param", "p", nil, "strategy parameter key=value (repeatable)")
	runCmd.Flags().StringVar(&runDBPath, "db", "", "journal completed run to this SQLite file")
	runCmd.Flags().StringVar(&runAdvisorURL, "advisor-url", "", "optional advisory endpoint")

	runCmd.MarkFlagRequired("data")
}

func runRun(cmd *cobra.Command, args []string) error {
	bars, err := data.Load(runDataPath)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	params, err := parseParams(runParams)
	if err != nil {
		return err
	}

	req := backtest.Request{
		StrategyID:     runStrategy,
		Params:         params,
		Symbol:         runSymbol,
		Bars:           bars,
		InitialCapital: runCapital,
	}
	if req.Start, err = parseDateFlag(runStart); err != nil {
		return err
	}
	if req.End, err = parseDateFlag(runEnd); err != nil {
		return err
	}

	engine := backtest.NewEngine()
	if runAdvisorURL != "" {
		engine.Advisor = advisory.NewHTTPAdvisor(runAdvisorURL)
	}

	result, err := engine.Run(context.Background(), req)
	if err != nil {
		return err
	}

	backtest.PrintResult(os.Stdout, result)

	if runDBPath != "" {
		j, err := journal.NewSQLite(runDBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()

		runID, err := j.RecordRun(result)
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		fmt.Printf("Journaled as run %s\n", runID)
	}

	return nil
}

func parseParams(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad --param %q (want key=value)", pair)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --param %q: %v", pair, err)
		}
		params[key] = v
	}
	return params, nil
}

func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("bad date %q (want YYYY-MM-DD)", s)
	}
	t = t.UTC()
	return &t, nil
}
