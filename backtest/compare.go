package backtest

import (
	"fmt"
	"io"
	"sort"
)

// Ranking is one row of a comparison report.
type Ranking struct {
	Rank        int
	StrategyID  string
	Symbol      string
	Score       float64
	Grade       string
	ReturnPct   float64
	Sharpe      float64
	MaxDrawdown float64
	WinRate     float64
}

// Report ranks completed runs by composite score.
type Report struct {
	Rankings []Ranking
	Best     *Result
}

// Compare ranks results descending by total score. The sort is stable, so
// equal scores keep their input order and Best is the first-seen top score.
// Empty input returns an empty report.
func Compare(results []*Result) Report {
	if len(results) == 0 {
		return Report{}
	}

	ranked := make([]*Result, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})

	report := Report{Best: ranked[0]}
	for i, r := range ranked {
		report.Rankings = append(report.Rankings, Ranking{
			Rank:        i + 1,
			StrategyID:  r.StrategyID,
			Symbol:      r.Symbol,
			Score:       r.Score.Total,
			Grade:       r.Score.Grade,
			ReturnPct:   r.Metrics.TotalReturnPct,
			Sharpe:      r.Metrics.SharpeRatio,
			MaxDrawdown: r.Metrics.MaxDrawdown,
			WinRate:     r.Metrics.WinRate,
		})
	}
	return report
}

// PrintReport writes the ranking table.
func PrintReport(w io.Writer, rep Report) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Strategy Comparison")
	fmt.Fprintln(w, "==================================================")

	if len(rep.Rankings) == 0 {
		fmt.Fprintln(w, "No results to compare.")
		return
	}

	fmt.Fprintf(w, "%-4s %-16s %-8s %-7s %-6s %-8s %-8s %-8s\n",
		"Rank", "Strategy", "Symbol", "Score", "Grade", "Return", "Sharpe", "WinRate")
	for _, r := range rep.Rankings {
		fmt.Fprintf(w, "%-4d %-16s %-8s %-7.1f %-6s %-8s %-8.2f %-8s\n",
			r.Rank, r.StrategyID, r.Symbol, r.Score, r.Grade,
			fmt.Sprintf("%.2f%%", r.ReturnPct*100),
			r.Sharpe,
			fmt.Sprintf("%.1f%%", r.WinRate*100))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %s (%.1f, %s)\n",
		rep.Best.StrategyID, rep.Best.Score.Total, rep.Best.Score.Grade)
}
