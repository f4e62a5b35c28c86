// Package strategies defines the strategy capability consumed by the backtest
// engine and a registry of named strategy factories.
package strategies

import (
	"errors"
	"fmt"
	"sort"

	"github.com/stratbench/stratbench/market"
)

// Action is the trading decision carried by a signal.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
	Hold Action = "HOLD"
)

// Signal is a single trading decision produced by a strategy for one bar.
type Signal struct {
	Action     Action
	Price      float64
	Confidence float64 // [0,1]
	Reasoning  string
	StopLoss   float64 // 0 means none
}

// Strategy produces a signal given the historical window visible at a point
// in time. GenerateSignal must be deterministic, must tolerate a growing
// window, and must not mutate it. A nil return means no opinion for this bar.
type Strategy interface {
	Name() string
	GenerateSignal(symbol string, window market.Series) *Signal
}

// Factory builds a strategy from its parameter map. Unknown keys are
// ignored; missing keys fall back to the strategy's defaults.
type Factory func(params map[string]float64) (Strategy, error)

// ErrUnknownStrategy is returned by New for names with no registered factory.
var ErrUnknownStrategy = errors.New("unknown strategy")

var registry = make(map[string]Factory)

// Register adds a named factory. Later registrations replace earlier ones.
func Register(name string, f Factory) {
	registry[name] = f
}

// New builds the named strategy with the given parameters.
func New(name string, params map[string]float64) (Strategy, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownStrategy, name, Names())
	}
	return f(params)
}

// Names returns the registered strategy names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// param reads a parameter with a default.
func param(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return def
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
