package strategies

import (
	"fmt"

	"github.com/stratbench/stratbench/indicators"
	"github.com/stratbench/stratbench/market"
)

// RSIReversion is a mean-reversion strategy: BUY when RSI drops below the
// oversold level, SELL when it rises above the overbought level.
type RSIReversion struct {
	Period     int
	Oversold   float64
	Overbought float64
}

func init() {
	Register("rsi-reversion", func(params map[string]float64) (Strategy, error) {
		s := &RSIReversion{
			Period:     int(param(params, "period", 14)),
			Oversold:   param(params, "oversold", 30),
			Overbought: param(params, "overbought", 70),
		}
		if s.Period <= 0 {
			return nil, fmt.Errorf("rsi-reversion: period must be positive, got %d", s.Period)
		}
		if s.Oversold >= s.Overbought {
			return nil, fmt.Errorf("rsi-reversion: oversold %v must be below overbought %v", s.Oversold, s.Overbought)
		}
		return s, nil
	})
}

func (s *RSIReversion) Name() string { return "rsi-reversion" }

func (s *RSIReversion) GenerateSignal(_ string, window market.Series) *Signal {
	rsi, err := indicators.RSI(window, s.Period)
	if err != nil {
		return nil
	}

	last := window[len(window)-1]

	switch {
	case rsi < s.Oversold:
		// Deeper below the band, stronger the reversion case.
		conf := clamp01(0.5 + (s.Oversold-rsi)/s.Oversold)
		return &Signal{
			Action:     Buy,
			Price:      last.Close,
			Confidence: conf,
			Reasoning:  fmt.Sprintf("RSI(%d) %.1f below oversold %.0f", s.Period, rsi, s.Oversold),
		}
	case rsi > s.Overbought:
		conf := clamp01(0.5 + (rsi-s.Overbought)/(100-s.Overbought))
		return &Signal{
			Action:     Sell,
			Price:      last.Close,
			Confidence: conf,
			Reasoning:  fmt.Sprintf("RSI(%d) %.1f above overbought %.0f", s.Period, rsi, s.Overbought),
		}
	}
	return nil
}
