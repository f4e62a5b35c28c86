// Package journal persists completed backtest runs. The engine itself never
// writes anywhere; callers hand a finished Result to a Journal.
package journal

import (
	"time"

	"github.com/stratbench/stratbench/backtest"
)

// RunRecord is the stored summary of one run.
type RunRecord struct {
	RunID    string
	Created  time.Time
	Strategy string
	Symbol   string

	Start time.Time
	End   time.Time

	InitialCapital float64
	FinalValue     float64

	TotalTrades int
	WinRate     float64
	Sharpe      float64
	MaxDrawdown float64
	Score       float64
	Grade       string
}

// TradeRow is one stored trade of a run.
type TradeRow struct {
	RunID      string
	Date       time.Time
	Action     string
	Price      float64
	Shares     float64
	Cost       float64
	Proceeds   float64
	Commission float64
	Fee        float64
	Reasoning  string
}

// EquityRow is one stored equity-curve sample of a run.
type EquityRow struct {
	RunID    string
	Date     time.Time
	Value    float64
	Price    float64
	Shares   float64
	Drawdown float64
}

// Journal records completed runs. The SQLite implementation additionally
// supports reading runs back; CSV is write-only.
type Journal interface {
	// RecordRun stores the run and returns its assigned run ID.
	RecordRun(r *backtest.Result) (string, error)

	Close() error
}
