package backtest

import (
	"fmt"
	"io"
	"time"

	"github.com/stratbench/stratbench/advisory"
	"github.com/stratbench/stratbench/metrics"
	"github.com/stratbench/stratbench/scoring"
	"github.com/stratbench/stratbench/sim"
	"github.com/stratbench/stratbench/strategies"
)

// SignalRecord is one strategy signal with the bar date it was produced on.
// HOLD signals are recorded here even though they execute nothing.
type SignalRecord struct {
	Date   time.Time
	Signal strategies.Signal
}

// EquityPoint is one mark-to-market sample of the portfolio.
// Invariant: Value == cash + Shares*Price at the time of the sample.
type EquityPoint struct {
	Date   time.Time
	Value  float64
	Price  float64
	Shares float64
}

// DrawdownPoint is the decline from the running equity peak at one bar.
type DrawdownPoint struct {
	Date     time.Time
	Drawdown float64 // (peak - value) / peak
	Peak     float64 // never decreases across the run
}

// Result is the complete record of one backtest run. It is created by Run
// and read-only afterwards; the caller owns it.
type Result struct {
	StrategyID string
	Symbol     string
	Params     map[string]float64

	Start time.Time
	End   time.Time

	InitialCapital float64
	FinalValue     float64

	Trades         []sim.Trade
	Signals        []SignalRecord
	EquityCurve    []EquityPoint
	DrawdownSeries []DrawdownPoint

	Metrics metrics.Metrics
	Score   scoring.Score

	Advisory      *advisory.Output
	AdvisoryError string
}

// PrintResult writes a human-readable run summary.
func PrintResult(w io.Writer, r *Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Strategy:      %s\n", r.StrategyID)
	fmt.Fprintf(w, "Symbol:        %s\n", r.Symbol)
	fmt.Fprintf(w, "Period:        %s to %s\n",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Capital")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial:       %.2f\n", r.InitialCapital)
	fmt.Fprintf(w, "Final:         %.2f\n", r.FinalValue)
	fmt.Fprintf(w, "Return:        %.2f%%\n", r.Metrics.TotalReturnPct*100)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Round Trips:   %d\n", r.Metrics.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", r.Metrics.WinningTrades)
	fmt.Fprintf(w, "Losses:        %d\n", r.Metrics.LosingTrades)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", r.Metrics.WinRate*100)
	fmt.Fprintf(w, "Sharpe:        %.2f\n", r.Metrics.SharpeRatio)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", r.Metrics.MaxDrawdown*100)
	if r.Metrics.ProfitFactor > 0 {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", r.Metrics.ProfitFactor)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Score")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Total:         %.1f (%s)\n", r.Score.Total, r.Score.Grade)
	fmt.Fprintf(w, "Performance:   %.1f\n", r.Score.Performance)
	fmt.Fprintf(w, "Risk:          %.1f\n", r.Score.Risk)
	fmt.Fprintf(w, "Consistency:   %.1f\n", r.Score.Consistency)
	fmt.Fprintf(w, "Implementation:%.1f\n", r.Score.Implementation)

	if len(r.Score.Recommendations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Recommendations")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, rec := range r.Score.Recommendations {
			fmt.Fprintf(w, "- %s\n", rec)
		}
	}

	if r.Advisory != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Advisory")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "%s (confidence %.2f)\n", r.Advisory.Assessment, r.Advisory.Confidence)
		for _, note := range r.Advisory.Notes {
			fmt.Fprintf(w, "- %s\n", note)
		}
	} else if r.AdvisoryError != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Advisory unavailable: %s\n", r.AdvisoryError)
	}

	fmt.Fprintln(w)
}
