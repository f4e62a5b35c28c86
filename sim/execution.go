package sim

import (
	"math"

	"github.com/stratbench/stratbench/market"
	"github.com/stratbench/stratbench/strategies"
)

// Config holds the execution friction model.
type Config struct {
	CommissionRate float64 // fraction of notional, both sides
	SlippageRate   float64 // price moves against the trader on both sides
	TransactionFee float64 // fixed cash fee per executed order
	MaxPositionPct float64 // cap on the cash fraction any one buy may spend
}

// DefaultConfig returns the reference friction model.
func DefaultConfig() Config {
	return Config{
		CommissionRate: 0.001,
		SlippageRate:   0.0005,
		TransactionFee: 5.0,
		MaxPositionPct: 0.10,
	}
}

// Apply executes a signal against the portfolio at the bar's close.
//
// A nil return means the signal was rejected, not an error: holds, buys while
// already long, sells while flat, zero computed shares, and insufficient cash
// all skip silently and the bar proceeds to mark-to-market without a trade.
func Apply(p *Portfolio, sig *strategies.Signal, bar market.Bar, cfg Config) *Trade {
	if sig == nil {
		return nil
	}

	switch sig.Action {
	case strategies.Buy:
		return applyBuy(p, sig, bar, cfg)
	case strategies.Sell:
		return applySell(p, sig, bar, cfg)
	default:
		return nil
	}
}

func applyBuy(p *Portfolio, sig *strategies.Signal, bar market.Bar, cfg Config) *Trade {
	if p.Shares != 0 {
		return nil
	}

	price := bar.Close * (1 + cfg.SlippageRate)

	fraction := sig.Confidence * cfg.MaxPositionPct
	if fraction > cfg.MaxPositionPct {
		fraction = cfg.MaxPositionPct
	}

	spend := p.Cash * fraction
	shares := math.Floor((spend - cfg.TransactionFee) / price)
	if shares <= 0 {
		return nil
	}

	commission := shares * price * cfg.CommissionRate
	cost := shares*price + commission + cfg.TransactionFee
	if cost > p.Cash {
		return nil
	}

	p.Cash -= cost
	p.Shares += shares

	return &Trade{
		Date:       bar.Date,
		Action:     strategies.Buy,
		Price:      price,
		Shares:     shares,
		TotalCost:  cost,
		Commission: commission,
		Fee:        cfg.TransactionFee,
		Confidence: sig.Confidence,
		Reasoning:  sig.Reasoning,
	}
}

func applySell(p *Portfolio, sig *strategies.Signal, bar market.Bar, cfg Config) *Trade {
	if p.Shares <= 0 {
		return nil
	}

	price := bar.Close * (1 - cfg.SlippageRate)
	shares := p.Shares

	gross := shares * price
	commission := gross * cfg.CommissionRate
	net := gross - commission - cfg.TransactionFee

	p.Cash += net
	p.Shares = 0

	return &Trade{
		Date:          bar.Date,
		Action:        strategies.Sell,
		Price:         price,
		Shares:        -shares,
		TotalProceeds: net,
		Commission:    commission,
		Fee:           cfg.TransactionFee,
		Confidence:    sig.Confidence,
		Reasoning:     sig.Reasoning,
	}
}
