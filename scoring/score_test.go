package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stratbench/stratbench/metrics"
)

func TestScoreZeroMetrics(t *testing.T) {
	s := ScoreMetrics(metrics.Metrics{})

	assert.Equal(t, 0.0, s.Performance)
	assert.Equal(t, 30.0, s.Risk, "no drawdown and no volatility keep the full risk base")
	assert.Equal(t, 0.0, s.Consistency)
	assert.Equal(t, 8.0, s.Implementation)
	assert.Equal(t, 38.0, s.Total)
	assert.Equal(t, "F", s.Grade)
}

func TestScoreTotalIsSumOfParts(t *testing.T) {
	m := metrics.Metrics{
		TotalTrades:    20,
		WinRate:        0.55,
		TotalReturnPct: 0.12,
		SharpeRatio:    1.4,
		StdReturn:      0.03,
		MaxDrawdown:    0.08,
		ProfitFactor:   1.8,
	}
	s := ScoreMetrics(m)
	assert.InDelta(t, s.Performance+s.Risk+s.Consistency+s.Implementation, s.Total, 1e-9)
}

func TestPerformanceScoreClamps(t *testing.T) {
	// A 50% return clamps at 20, a Sharpe of 4 clamps at 10, and a perfect
	// win rate adds 10. Sum hits the 40 ceiling exactly.
	m := metrics.Metrics{TotalReturnPct: 0.50, WinRate: 1.0, SharpeRatio: 4.0}
	assert.Equal(t, 40.0, performanceScore(m))

	// A negative return contributes nothing but cannot go below zero.
	assert.Equal(t, 0.0, performanceScore(metrics.Metrics{TotalReturnPct: -0.30}))
}

func TestRiskScorePenaltiesAndBonus(t *testing.T) {
	// 10% drawdown costs 5, 2% volatility costs 2.
	m := metrics.Metrics{MaxDrawdown: 0.10, StdReturn: 0.02}
	assert.InDelta(t, 30-5-2, riskScore(m), 1e-9)

	// Profit factor 2 earns a bonus of 2 on top.
	m.ProfitFactor = 2.0
	assert.InDelta(t, 30-5-2+2, riskScore(m), 1e-9)

	// Penalties cap at 15 and 10; the worst case leaves 5.
	worst := metrics.Metrics{MaxDrawdown: 0.90, StdReturn: 0.50}
	assert.InDelta(t, 5.0, riskScore(worst), 1e-9)

	// Profit factor bonus saturates at 5.
	best := metrics.Metrics{ProfitFactor: 10.0}
	assert.InDelta(t, 35.0, riskScore(best), 1e-9)
}

func TestConsistencyScore(t *testing.T) {
	// Few trades: frequency credit only, no balance bonus.
	assert.InDelta(t, 0.3, consistencyScore(metrics.Metrics{TotalTrades: 3, WinRate: 0.5}), 1e-9)

	// Enough trades and a 50% win rate take the full balance bonus.
	m := metrics.Metrics{TotalTrades: 100, WinRate: 0.5}
	assert.InDelta(t, 20.0, consistencyScore(m), 1e-9)

	// A lopsided win rate erodes the bonus.
	m.WinRate = 0.9
	assert.InDelta(t, 10+(1-0.8)*10, consistencyScore(m), 1e-9)
}

func TestGradeLadder(t *testing.T) {
	cases := []struct {
		total float64
		want  string
	}{
		{95, "A+"}, {90, "A+"}, {87, "A"}, {82, "A-"},
		{76, "B+"}, {71, "B"}, {66, "B-"},
		{61, "C+"}, {56, "C"}, {51, "C-"},
		{45, "D"}, {44.9, "F"}, {0, "F"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, grade(c.total), "total %.1f", c.total)
	}
}

func TestRecommendations(t *testing.T) {
	// A weak run trips every rule.
	weak := metrics.Metrics{WinRate: 0.2, MaxDrawdown: 0.35, SharpeRatio: 0.3, TotalTrades: 4}
	recs := recommendations(weak, 30)
	assert.Len(t, recs, 5)

	// A strong run gets the single positive line.
	strong := metrics.Metrics{WinRate: 0.6, MaxDrawdown: 0.05, SharpeRatio: 1.8, TotalTrades: 40}
	recs = recommendations(strong, 85)
	assert.Len(t, recs, 1)
	assert.Contains(t, recs[0], "solid")
}

func TestScoreWithConfig(t *testing.T) {
	s := ScoreWithConfig(metrics.Metrics{}, Config{ImplementationScore: 3})
	assert.Equal(t, 3.0, s.Implementation)
	assert.Equal(t, 33.0, s.Total)
}
