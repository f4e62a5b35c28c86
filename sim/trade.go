// Package sim models trade execution against a single-run portfolio:
// slippage, commission, a fixed per-transaction fee, and confidence-weighted
// position sizing. Long-only: flat -> long -> flat.
package sim

import (
	"time"

	"github.com/stratbench/stratbench/strategies"
)

// Trade is one executed order. Trades are append-only and ordered by date;
// the slice is owned by a single simulation run.
type Trade struct {
	Date          time.Time
	Action        strategies.Action
	Price         float64 // execution price after slippage
	Shares        float64 // positive for a buy lot, negative for a sell
	TotalCost     float64 // buys: cash debited including commission and fee
	TotalProceeds float64 // sells: net cash credited
	Commission    float64
	Fee           float64
	Confidence    float64
	Reasoning     string
}

// Portfolio is the mutable state of one simulation run. It is exclusively
// owned by that run and never shared.
type Portfolio struct {
	Cash   float64
	Shares float64
}

// Value marks the portfolio to market at the given price.
func (p Portfolio) Value(price float64) float64 {
	return p.Cash + p.Shares*price
}
