// Package backtest drives the simulation loop: it replays a historical bar
// series through a named strategy, executes signals against a run-scoped
// portfolio, and assembles the equity curve, metrics, score, and optional
// advisory commentary into a Result.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stratbench/stratbench/advisory"
	"github.com/stratbench/stratbench/market"
	"github.com/stratbench/stratbench/metrics"
	"github.com/stratbench/stratbench/scoring"
	"github.com/stratbench/stratbench/sim"
	"github.com/stratbench/stratbench/strategies"
)

var (
	// ErrInput marks empty or malformed market data and bad run options.
	ErrInput = errors.New("invalid input")

	// ErrConfig marks an unknown strategy or unusable parameters.
	ErrConfig = errors.New("invalid configuration")
)

// DefaultMinLookback is the number of bars that must be visible before a
// strategy is asked for a signal. Earlier bars are skipped, not errors.
const DefaultMinLookback = 20

// DefaultAdvisoryTimeout bounds the single optional advisory call per run.
const DefaultAdvisoryTimeout = 10 * time.Second

// Request describes one backtest run.
type Request struct {
	StrategyID     string
	Params         map[string]float64
	Symbol         string
	Bars           market.Series
	InitialCapital float64
	Start          *time.Time // inclusive, nil = from first bar
	End            *time.Time // inclusive, nil = to last bar
}

// Engine holds the run-independent configuration. A single Engine may serve
// many concurrent Run calls; each run owns its portfolio exclusively.
type Engine struct {
	Exec         sim.Config
	Scoring      scoring.Config
	RiskFreeRate float64
	MinLookback  int

	// Advisor is optional. When nil or unavailable it is skipped entirely.
	Advisor         advisory.Advisor
	AdvisoryTimeout time.Duration
}

// NewEngine returns an engine with the reference defaults.
func NewEngine() *Engine {
	return &Engine{
		Exec:            sim.DefaultConfig(),
		Scoring:         scoring.DefaultConfig(),
		RiskFreeRate:    metrics.DefaultRiskFreeRate,
		MinLookback:     DefaultMinLookback,
		AdvisoryTimeout: DefaultAdvisoryTimeout,
	}
}

// Run executes one backtest. Identical requests always produce identical
// numeric results: the loop consults no clock and no randomness.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	if req.InitialCapital <= 0 {
		return nil, fmt.Errorf("%w: initial capital must be positive, got %v", ErrInput, req.InitialCapital)
	}
	if err := req.Bars.Validate(); err != nil {
		return nil, fmt.Errorf("%w: market data: %v", ErrInput, err)
	}

	bars := req.Bars.FilterRange(req.Start, req.End)
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no bars within the requested date range", ErrInput)
	}

	strat, err := strategies.New(req.StrategyID, req.Params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	minLookback := e.MinLookback
	if minLookback <= 0 {
		minLookback = DefaultMinLookback
	}

	res := &Result{
		StrategyID:     req.StrategyID,
		Symbol:         req.Symbol,
		Params:         req.Params,
		Start:          bars[0].Date,
		End:            bars[len(bars)-1].Date,
		InitialCapital: req.InitialCapital,
		FinalValue:     req.InitialCapital,
	}

	port := sim.Portfolio{Cash: req.InitialCapital}
	peak := req.InitialCapital

	for i, bar := range bars {
		// Not enough history yet: no signal request, but the bar is still
		// marked to market below.
		if i+1 >= minLookback {
			if sig := strat.GenerateSignal(req.Symbol, bars.Window(i)); sig != nil {
				res.Signals = append(res.Signals, SignalRecord{Date: bar.Date, Signal: *sig})

				if trade := sim.Apply(&port, sig, bar, e.Exec); trade != nil {
					res.Trades = append(res.Trades, *trade)
				}
			}
		}

		value := port.Value(bar.Close)
		res.EquityCurve = append(res.EquityCurve, EquityPoint{
			Date:   bar.Date,
			Value:  value,
			Price:  bar.Close,
			Shares: port.Shares,
		})

		if value > peak {
			peak = value
		}
		res.DrawdownSeries = append(res.DrawdownSeries, DrawdownPoint{
			Date:     bar.Date,
			Drawdown: (peak - value) / peak,
			Peak:     peak,
		})
	}

	res.FinalValue = res.EquityCurve[len(res.EquityCurve)-1].Value
	res.Metrics = metrics.CalculateWithRate(res.Trades, req.InitialCapital, e.RiskFreeRate)
	res.Score = scoring.ScoreWithConfig(res.Metrics, e.Scoring)

	e.advise(ctx, req, bars, res)

	return res, nil
}

// advise performs the at-most-once advisory call. Failure or unavailability
// attaches an error payload and never disturbs the numeric result.
func (e *Engine) advise(ctx context.Context, req Request, bars market.Series, res *Result) {
	if e.Advisor == nil || !e.Advisor.Available() {
		return
	}

	timeout := e.AdvisoryTimeout
	if timeout <= 0 {
		timeout = DefaultAdvisoryTimeout
	}
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := e.Advisor.ScoreStrategy(actx, req.StrategyID, res.Metrics, marketSummary(req.Symbol, bars))
	if err != nil {
		res.AdvisoryError = err.Error()
		return
	}
	res.Advisory = out
}

// marketSummary is a short deterministic description of the tested period.
func marketSummary(symbol string, bars market.Series) string {
	first := bars[0]
	last := bars[len(bars)-1]
	change := (last.Close - first.Close) / first.Close * 100

	return fmt.Sprintf("%s: %d bars %s to %s, close %.2f to %.2f (%+.1f%%)",
		symbol, len(bars),
		first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"),
		first.Close, last.Close, change)
}
