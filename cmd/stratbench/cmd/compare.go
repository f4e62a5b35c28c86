package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/stratbench/stratbench/backtest"
	"github.com/stratbench/stratbench/market/data"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Backtest several strategies over the same data and rank them",
	Long: `Compare runs every named strategy over the same bar file and prints a
ranking by composite score. Failures of individual strategies are reported
per item and do not abort the rest.

Example:
  stratbench compare --data data/AAPL.csv -s sma-cross -s momentum -s rsi-reversion`,
	RunE: runCompare,
}

var (
	cmpDataPath   string
	cmpSymbol     string
	cmpCapital    float64
	cmpStrategies []string
	cmpWorkers    int
)

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&cmpDataPath, "data", "d", "", "path to bar data (.csv, .csv.xz, .zip) (required)")
	compareCmd.Flags().StringVar(&cmpSymbol, "symbol", "UNKNOWN", "symbol label for the runs")
	compareCmd.Flags().Float64VarP(&cmpCapital, "capital", "c", 100_000, "initial capital")
	compareCmd.Flags().StringSliceVarP(&cmpStrategies, "strategy", "s", []string{"sma-cross", "momentum", "rsi-reversion"}, "strategies to compare")
	compareCmd.Flags().IntVar(&cmpWorkers, "workers", 0, "concurrent runs (0 = NumCPU)")

	compareCmd.MarkFlagRequired("data")
}

func runCompare(cmd *cobra.Command, args []string) error {
	bars, err := data.Load(cmpDataPath)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	reqs := make(map[string]backtest.Request, len(cmpStrategies))
	for _, name := range cmpStrategies {
		reqs[name] = backtest.Request{
			StrategyID:     name,
			Symbol:         cmpSymbol,
			Bars:           bars,
			InitialCapital: cmpCapital,
		}
	}

	engine := backtest.NewEngine()
	outcomes := engine.RunBatch(context.Background(), reqs, cmpWorkers)

	ids := make([]string, 0, len(outcomes))
	for id := range outcomes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var results []*backtest.Result
	for _, id := range ids {
		oc := outcomes[id]
		if oc.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", id, oc.Err)
			continue
		}
		results = append(results, oc.Result)
	}

	backtest.PrintReport(os.Stdout, backtest.Compare(results))
	return nil
}
