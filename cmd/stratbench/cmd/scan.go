package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/stratbench/stratbench/advisory"
	"github.com/stratbench/stratbench/backtest"
	"github.com/stratbench/stratbench/config"
	"github.com/stratbench/stratbench/journal"
	"github.com/stratbench/stratbench/market/data"
	"github.com/stratbench/stratbench/metrics"
	"github.com/stratbench/stratbench/pkg/logx"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run scheduled strategy comparisons from a config file",
	Long: `Scan runs the configured strategy roster over every configured symbol on
a cron schedule, journaling results between runs. Stop with Ctrl-C.

Example:
  stratbench scan --config stratbench.yaml`,
	RunE: runScan,
}

var scanConfigPath string

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanConfigPath, "config", "stratbench.yaml", "path to config file")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(scanConfigPath)
	if err != nil {
		return err
	}
	if cfg.Scan.Cron == "" {
		return fmt.Errorf("scan.cron not configured")
	}
	if len(cfg.Scan.Symbols) == 0 {
		return fmt.Errorf("scan.symbols not configured")
	}

	log := logx.New(logLevel)

	engine := engineFromConfig(cfg)

	var j journal.Journal
	switch cfg.Journal.Type {
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.EquityFile)
	}
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	scan := func() {
		for _, symbol := range cfg.Scan.Symbols {
			path := filepath.Join(cfg.Scan.DataDir, symbol+".csv")
			bars, err := data.Load(path)
			if err != nil {
				log.Error("load data", "symbol", symbol, "path", path, "err", err)
				continue
			}

			reqs := make(map[string]backtest.Request, len(cfg.Scan.Strategies))
			for _, name := range cfg.Scan.Strategies {
				reqs[name] = backtest.Request{
					StrategyID:     name,
					Symbol:         symbol,
					Bars:           bars,
					InitialCapital: cfg.Engine.InitialCapital,
				}
			}

			outcomes := engine.RunBatch(context.Background(), reqs, 0)

			var results []*backtest.Result
			for id, oc := range outcomes {
				if oc.Err != nil {
					log.Warn("run failed", "symbol", symbol, "strategy", id, "err", oc.Err)
					continue
				}
				results = append(results, oc.Result)
				if j != nil {
					if _, err := j.RecordRun(oc.Result); err != nil {
						log.Error("journal run", "symbol", symbol, "strategy", id, "err", err)
					}
				}
			}

			report := backtest.Compare(results)
			if report.Best != nil {
				log.Info("scan complete",
					"symbol", symbol,
					"strategies", len(results),
					"best", report.Best.StrategyID,
					"score", report.Best.Score.Total,
					"grade", report.Best.Score.Grade)
			}
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Scan.Cron, scan); err != nil {
		return fmt.Errorf("bad cron spec %q: %w", cfg.Scan.Cron, err)
	}

	log.Info("scan daemon starting", "cron", cfg.Scan.Cron, "symbols", cfg.Scan.Symbols)
	c.Start()
	defer c.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("scan daemon stopping")
	return nil
}

func engineFromConfig(cfg *config.Config) *backtest.Engine {
	engine := backtest.NewEngine()
	engine.Exec = cfg.Engine.ExecConfig()
	engine.Scoring = cfg.Scoring
	if cfg.Engine.RiskFreeRate > 0 {
		engine.RiskFreeRate = cfg.Engine.RiskFreeRate
	} else {
		engine.RiskFreeRate = metrics.DefaultRiskFreeRate
	}
	if cfg.Engine.MinLookback > 0 {
		engine.MinLookback = cfg.Engine.MinLookback
	}
	if cfg.Advisory.Endpoint != "" {
		engine.Advisor = advisory.NewHTTPAdvisor(cfg.Advisory.Endpoint)
		if d, err := time.ParseDuration(cfg.Advisory.Timeout); err == nil && d > 0 {
			engine.AdvisoryTimeout = d
		}
	}
	return engine
}
