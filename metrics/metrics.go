// Package metrics derives performance and risk statistics from a completed
// trade log. All arithmetic edge cases (no trades, no losers, zero variance)
// resolve to zero rather than an error or NaN.
package metrics

import (
	"math"

	"github.com/stratbench/stratbench/sim"
	"github.com/stratbench/stratbench/strategies"
)

// DefaultRiskFreeRate is the annualized rate used by Calculate. The Sharpe
// computation divides it by 252 trading days to get a per-period rate.
const DefaultRiskFreeRate = 0.02

// TradingDaysPerYear converts the annual risk-free rate to a per-bar rate.
const TradingDaysPerYear = 252

// Metrics aggregates the statistics of one run's closed round trips.
type Metrics struct {
	TotalTrades   int // closed round trips
	WinningTrades int
	LosingTrades  int

	WinRate        float64
	TotalReturn    float64 // dollars across all round trips
	TotalReturnPct float64 // TotalReturn / initial capital
	AvgReturn      float64 // mean per-trip return fraction
	StdReturn      float64 // sample standard deviation of trip returns
	SharpeRatio    float64
	MaxDrawdown    float64
	ProfitFactor   float64

	LargestWin     float64
	LargestLoss    float64
	AvgHoldingDays float64
}

// pair is one closed round trip produced by FIFO matching.
type pair struct {
	returnPct   float64
	profit      float64
	holdingDays float64
}

// Calculate computes metrics with the default risk-free rate.
func Calculate(trades []sim.Trade, initialCapital float64) Metrics {
	return CalculateWithRate(trades, initialCapital, DefaultRiskFreeRate)
}

// CalculateWithRate computes metrics from the trade log. An empty log yields
// the zero value.
func CalculateWithRate(trades []sim.Trade, initialCapital float64, riskFreeRate float64) Metrics {
	var m Metrics
	if len(trades) == 0 {
		return m
	}

	pairs := pairFIFO(trades)
	m.TotalTrades = len(pairs)

	var (
		grossWins   float64
		grossLosses float64
		totalDays   float64
	)
	for _, p := range pairs {
		m.TotalReturn += p.profit
		totalDays += p.holdingDays

		if p.profit > 0 {
			m.WinningTrades++
			grossWins += p.profit
			if p.profit > m.LargestWin {
				m.LargestWin = p.profit
			}
		} else if p.profit < 0 {
			m.LosingTrades++
			grossLosses += -p.profit
			if p.profit < m.LargestLoss {
				m.LargestLoss = p.profit
			}
		}
	}

	if m.TotalTrades > 0 {
		m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades)
		m.AvgHoldingDays = totalDays / float64(m.TotalTrades)
	}
	if initialCapital > 0 {
		m.TotalReturnPct = m.TotalReturn / initialCapital
	}

	returns := make([]float64, len(pairs))
	for i, p := range pairs {
		returns[i] = p.returnPct
	}
	m.AvgReturn = mean(returns)
	m.StdReturn = sampleStdDev(returns, m.AvgReturn)

	if m.StdReturn > 0 {
		m.SharpeRatio = (m.AvgReturn - riskFreeRate/TradingDaysPerYear) / m.StdReturn
	}

	if grossLosses > 0 {
		m.ProfitFactor = grossWins / grossLosses
	}

	m.MaxDrawdown = maxDrawdown(trades, initialCapital)
	return m
}

// pairFIFO matches each sell against the oldest still-open buy lots.
func pairFIFO(trades []sim.Trade) []pair {
	var (
		open  []sim.Trade
		pairs []pair
	)

	for _, t := range trades {
		switch t.Action {
		case strategies.Buy:
			open = append(open, t)

		case strategies.Sell:
			remaining := -t.Shares
			for remaining > 0 && len(open) > 0 {
				buy := open[0]
				matched := buy.Shares
				if matched > remaining {
					matched = remaining
				}

				var retPct float64
				if buy.Price > 0 {
					retPct = (t.Price - buy.Price) / buy.Price
				}
				pairs = append(pairs, pair{
					returnPct:   retPct,
					profit:      (t.Price - buy.Price) * matched,
					holdingDays: t.Date.Sub(buy.Date).Hours() / 24,
				})

				buy.Shares -= matched
				remaining -= matched
				if buy.Shares <= 0 {
					open = open[1:]
				} else {
					open[0] = buy
				}
			}
		}
	}
	return pairs
}

// maxDrawdown replays the cash ledger trade by trade against a running peak
// that starts at the initial capital.
func maxDrawdown(trades []sim.Trade, initialCapital float64) float64 {
	running := initialCapital
	peak := initialCapital
	maxDD := 0.0

	for _, t := range trades {
		switch t.Action {
		case strategies.Buy:
			running -= t.TotalCost
		case strategies.Sell:
			running += t.TotalProceeds
		}
		if running > peak {
			peak = running
		}
		if peak > 0 {
			if dd := (peak - running) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// sampleStdDev uses the n-1 denominator; fewer than two samples yield 0.
func sampleStdDev(vals []float64, avg float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		d := v - avg
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}
