package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratbench/stratbench/sim"
	"github.com/stratbench/stratbench/strategies"
)

func tradeDay(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func buyTrade(day int, price, shares float64) sim.Trade {
	return sim.Trade{
		Date:      tradeDay(day),
		Action:    strategies.Buy,
		Price:     price,
		Shares:    shares,
		TotalCost: price * shares,
	}
}

func sellTrade(day int, price, shares float64) sim.Trade {
	return sim.Trade{
		Date:          tradeDay(day),
		Action:        strategies.Sell,
		Price:         price,
		Shares:        -shares,
		TotalProceeds: price * shares,
	}
}

func TestCalculateEmptyTrades(t *testing.T) {
	m := Calculate(nil, 100_000)
	assert.Equal(t, Metrics{}, m, "no trades must yield the zero value, not an error")
}

func TestCalculateSinglePair(t *testing.T) {
	trades := []sim.Trade{
		buyTrade(0, 100, 99),
		sellTrade(19, 110, 99),
	}
	m := Calculate(trades, 100_000)

	assert.Equal(t, 1, m.TotalTrades)
	assert.Equal(t, 1, m.WinningTrades)
	assert.Equal(t, 0, m.LosingTrades)
	assert.Equal(t, 1.0, m.WinRate)

	assert.InDelta(t, (110.0-100.0)*99, m.TotalReturn, 1e-9)
	assert.InDelta(t, 990.0/100_000, m.TotalReturnPct, 1e-9)
	assert.InDelta(t, 0.10, m.AvgReturn, 1e-9)

	// One sample: no variance, and Sharpe is defined to be zero.
	assert.Equal(t, 0.0, m.StdReturn)
	assert.Equal(t, 0.0, m.SharpeRatio)

	// No losing pairs: profit factor resolves to zero.
	assert.Equal(t, 0.0, m.ProfitFactor)

	assert.InDelta(t, 19.0, m.AvgHoldingDays, 1e-9)
	assert.InDelta(t, 990.0, m.LargestWin, 1e-9)
	assert.Equal(t, 0.0, m.LargestLoss)
}

func TestCalculateFIFOPairing(t *testing.T) {
	trades := []sim.Trade{
		buyTrade(0, 100, 10),
		sellTrade(5, 110, 10), // +10%
		buyTrade(10, 100, 10),
		sellTrade(15, 90, 10), // -10%
		buyTrade(20, 100, 10),
		sellTrade(25, 105, 10), // +5%
	}
	m := Calculate(trades, 10_000)

	assert.Equal(t, 3, m.TotalTrades)
	assert.Equal(t, 2, m.WinningTrades)
	assert.Equal(t, 1, m.LosingTrades)
	assert.InDelta(t, 2.0/3.0, m.WinRate, 1e-9)

	// Returns are +0.10, -0.10, +0.05.
	assert.InDelta(t, (0.10-0.10+0.05)/3, m.AvgReturn, 1e-9)

	wantStd := math.Sqrt((math.Pow(0.10-m.AvgReturn, 2) +
		math.Pow(-0.10-m.AvgReturn, 2) +
		math.Pow(0.05-m.AvgReturn, 2)) / 2)
	assert.InDelta(t, wantStd, m.StdReturn, 1e-9)

	wantSharpe := (m.AvgReturn - DefaultRiskFreeRate/TradingDaysPerYear) / wantStd
	assert.InDelta(t, wantSharpe, m.SharpeRatio, 1e-9)

	// Gross wins 100+50 against gross losses 100.
	assert.InDelta(t, 1.5, m.ProfitFactor, 1e-9)

	assert.InDelta(t, 100.0, m.LargestWin, 1e-9)
	assert.InDelta(t, -100.0, m.LargestLoss, 1e-9)
}

func TestCalculatePartialLotMatching(t *testing.T) {
	// One oversized sell consumes two buy lots, oldest first.
	trades := []sim.Trade{
		buyTrade(0, 100, 5),
		buyTrade(1, 200, 5),
		sellTrade(2, 210, 10),
	}
	m := Calculate(trades, 10_000)

	require.Equal(t, 2, m.TotalTrades)
	assert.Equal(t, 2, m.WinningTrades)
	// (210-100)*5 + (210-200)*5
	assert.InDelta(t, 550+50, m.TotalReturn, 1e-9)
}

func TestMaxDrawdownReplay(t *testing.T) {
	// Cash 1000 -> buy costs 600 (running 400) -> sell returns 500
	// (running 900). Peak stays 1000; worst point is 400.
	trades := []sim.Trade{
		{Date: tradeDay(0), Action: strategies.Buy, Price: 60, Shares: 10, TotalCost: 600},
		{Date: tradeDay(5), Action: strategies.Sell, Price: 50, Shares: -10, TotalProceeds: 500},
	}
	m := Calculate(trades, 1000)
	assert.InDelta(t, 0.6, m.MaxDrawdown, 1e-9)
}

func TestCalculateWithRate(t *testing.T) {
	trades := []sim.Trade{
		buyTrade(0, 100, 10),
		sellTrade(5, 110, 10),
		buyTrade(10, 100, 10),
		sellTrade(15, 120, 10),
	}

	m0 := CalculateWithRate(trades, 10_000, 0)
	m5 := CalculateWithRate(trades, 10_000, 0.05)
	assert.Greater(t, m0.SharpeRatio, m5.SharpeRatio,
		"a higher risk-free rate must lower the Sharpe ratio")
}

func TestCalculateIgnoresOpenPosition(t *testing.T) {
	trades := []sim.Trade{
		buyTrade(0, 100, 10),
		sellTrade(5, 110, 10),
		buyTrade(10, 100, 10), // never closed
	}
	m := Calculate(trades, 10_000)
	assert.Equal(t, 1, m.TotalTrades, "an open lot is not a round trip")
}
