package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/stratbench/stratbench/backtest"
	"github.com/stratbench/stratbench/pkg/id"
)

// CSVJournal appends runs to a pair of CSV files, one for trades and one
// for equity samples. Write-only.
type CSVJournal struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

func NewCSV(tradesPath, equityPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := tw.Write([]string{"run_id", "date", "action", "price", "shares", "cost", "proceeds", "commission", "fee", "reasoning"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"run_id", "date", "value", "price", "shares", "drawdown"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{trades: tw, equity: ew, tf: tf, ef: ef}, nil
}

func (j *CSVJournal) RecordRun(r *backtest.Result) (string, error) {
	runID := id.New()

	for _, t := range r.Trades {
		j.trades.Write([]string{
			runID,
			t.Date.Format(time.RFC3339),
			string(t.Action),
			f(t.Price),
			f(t.Shares),
			f(t.TotalCost),
			f(t.TotalProceeds),
			f(t.Commission),
			f(t.Fee),
			t.Reasoning,
		})
	}
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return "", err
	}

	for i, p := range r.EquityCurve {
		dd := 0.0
		if i < len(r.DrawdownSeries) {
			dd = r.DrawdownSeries[i].Drawdown
		}
		j.equity.Write([]string{
			runID,
			p.Date.Format(time.RFC3339),
			f(p.Value),
			f(p.Price),
			f(p.Shares),
			f(dd),
		})
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	j.equity.Flush()
	if err := j.tf.Close(); err != nil {
		j.ef.Close()
		return err
	}
	return j.ef.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
