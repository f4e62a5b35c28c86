// Package scoring converts run metrics into a weighted composite score with
// a letter grade and rule-based recommendations. Scoring is deterministic.
package scoring

import (
	"fmt"

	"github.com/stratbench/stratbench/metrics"
)

// Sub-score caps of the composite model.
const (
	maxReturnScore      = 20.0
	maxWinRateScore     = 10.0
	maxSharpeScore      = 10.0
	maxPerformanceScore = 40.0

	baseRiskScore        = 30.0
	maxDrawdownPenalty   = 15.0
	maxVolatilityPenalty = 10.0
	maxProfitFactorBonus = 5.0

	maxFrequencyScore   = 10.0
	maxConsistencyScore = 20.0
)

// Config tunes the parts of the model that are not fixed weights. The
// implementation score is a reserved slot for execution-quality factors
// (realized vs. modeled slippage); the reference model pins it at 8.
type Config struct {
	ImplementationScore float64 `json:"implementation_score" yaml:"implementation_score"`
}

// DefaultConfig returns the reference scoring model.
func DefaultConfig() Config {
	return Config{ImplementationScore: 8}
}

// Score is the composite result. Total is always the sum of the four
// sub-scores.
type Score struct {
	Total          float64
	Performance    float64
	Risk           float64
	Consistency    float64
	Implementation float64

	Grade           string
	Recommendations []string
}

// ScoreMetrics scores a run with the default configuration.
func ScoreMetrics(m metrics.Metrics) Score {
	return ScoreWithConfig(m, DefaultConfig())
}

// ScoreWithConfig converts metrics into the composite score.
func ScoreWithConfig(m metrics.Metrics, cfg Config) Score {
	s := Score{
		Performance:    performanceScore(m),
		Risk:           riskScore(m),
		Consistency:    consistencyScore(m),
		Implementation: cfg.ImplementationScore,
	}
	s.Total = s.Performance + s.Risk + s.Consistency + s.Implementation
	s.Grade = grade(s.Total)
	s.Recommendations = recommendations(m, s.Total)
	return s
}

// performanceScore: 0-20 for return, 0-10 for win rate, 0-10 for Sharpe.
func performanceScore(m metrics.Metrics) float64 {
	returnScore := clamp(m.TotalReturnPct*100, 0, maxReturnScore)
	winRateScore := m.WinRate * maxWinRateScore
	sharpeScore := clamp(m.SharpeRatio*5, 0, maxSharpeScore)

	return clamp(returnScore+winRateScore+sharpeScore, 0, maxPerformanceScore)
}

// riskScore starts at 30, subtracts drawdown and volatility penalties, and
// grants a capped bonus for a profit factor above 1. Floored at zero.
func riskScore(m metrics.Metrics) float64 {
	score := baseRiskScore

	score -= min(maxDrawdownPenalty, m.MaxDrawdown*50)
	score -= min(maxVolatilityPenalty, m.StdReturn*100)

	if m.ProfitFactor > 1 {
		score += min(maxProfitFactorBonus, (m.ProfitFactor-1)*2)
	}

	if score < 0 {
		score = 0
	}
	return score
}

// consistencyScore rewards trade frequency and a win rate near 50%.
func consistencyScore(m metrics.Metrics) float64 {
	score := min(maxFrequencyScore, float64(m.TotalTrades)/10)

	if m.TotalTrades > 5 {
		score += (1 - abs(m.WinRate-0.5)*2) * 10
	}

	return clamp(score, 0, maxConsistencyScore)
}

func grade(total float64) string {
	switch {
	case total >= 90:
		return "A+"
	case total >= 85:
		return "A"
	case total >= 80:
		return "A-"
	case total >= 75:
		return "B+"
	case total >= 70:
		return "B"
	case total >= 65:
		return "B-"
	case total >= 60:
		return "C+"
	case total >= 55:
		return "C"
	case total >= 50:
		return "C-"
	case total >= 45:
		return "D"
	default:
		return "F"
	}
}

func recommendations(m metrics.Metrics, total float64) []string {
	var recs []string

	if m.WinRate < 0.4 {
		recs = append(recs, fmt.Sprintf(
			"Win rate %.0f%% is low; tighten entry conditions or add confirmation filters.", m.WinRate*100))
	}
	if m.MaxDrawdown > 0.2 {
		recs = append(recs, fmt.Sprintf(
			"Max drawdown %.0f%% exceeds 20%%; reduce position size or add a stop-loss policy.", m.MaxDrawdown*100))
	}
	if m.SharpeRatio < 1.0 {
		recs = append(recs, fmt.Sprintf(
			"Sharpe ratio %.2f is below 1.0; returns do not justify the volatility taken.", m.SharpeRatio))
	}
	if m.TotalTrades < 10 {
		recs = append(recs, fmt.Sprintf(
			"Only %d closed trades; results are not statistically significant, test a longer period.", m.TotalTrades))
	}
	if total < 60 {
		recs = append(recs, "Overall score is below 60; revisit the strategy before committing capital.")
	}

	if len(recs) == 0 {
		recs = append(recs, "Strategy shows solid risk-adjusted performance across the tested period.")
	}
	return recs
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
