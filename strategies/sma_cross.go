package strategies

import (
	"fmt"
	"math"

	"github.com/stratbench/stratbench/indicators"
	"github.com/stratbench/stratbench/market"
)

// SMACross signals on a fast/slow simple moving average crossover:
// BUY when the fast average crosses above the slow one, SELL on the
// opposite cross. Between crosses it stays quiet.
type SMACross struct {
	Fast int
	Slow int
}

func init() {
	Register("sma-cross", func(params map[string]float64) (Strategy, error) {
		s := &SMACross{
			Fast: int(param(params, "fast", 20)),
			Slow: int(param(params, "slow", 50)),
		}
		if s.Fast <= 0 || s.Slow <= 0 {
			return nil, fmt.Errorf("sma-cross: periods must be positive (fast=%d slow=%d)", s.Fast, s.Slow)
		}
		if s.Fast >= s.Slow {
			return nil, fmt.Errorf("sma-cross: fast period %d must be below slow period %d", s.Fast, s.Slow)
		}
		return s, nil
	})
}

func (s *SMACross) Name() string { return "sma-cross" }

func (s *SMACross) GenerateSignal(_ string, window market.Series) *Signal {
	// One extra bar so the previous averages exist for cross detection.
	if len(window) < s.Slow+1 {
		return nil
	}

	fastNow, err := indicators.SMA(window, s.Fast)
	if err != nil {
		return nil
	}
	slowNow, err := indicators.SMA(window, s.Slow)
	if err != nil {
		return nil
	}
	prev := window[:len(window)-1]
	fastPrev, err := indicators.SMA(prev, s.Fast)
	if err != nil {
		return nil
	}
	slowPrev, err := indicators.SMA(prev, s.Slow)
	if err != nil {
		return nil
	}

	bullCross := fastNow > slowNow && fastPrev <= slowPrev
	bearCross := fastNow < slowNow && fastPrev >= slowPrev
	if !bullCross && !bearCross {
		return nil
	}

	last := window[len(window)-1]
	// Wider separation at the cross means a stronger move.
	sep := math.Abs(fastNow-slowNow) / slowNow
	conf := clamp01(0.5 + sep*25)

	if bullCross {
		return &Signal{
			Action:     Buy,
			Price:      last.Close,
			Confidence: conf,
			Reasoning:  fmt.Sprintf("SMA(%d) crossed above SMA(%d): %.2f > %.2f", s.Fast, s.Slow, fastNow, slowNow),
		}
	}
	return &Signal{
		Action:     Sell,
		Price:      last.Close,
		Confidence: conf,
		Reasoning:  fmt.Sprintf("SMA(%d) crossed below SMA(%d): %.2f < %.2f", s.Fast, s.Slow, fastNow, slowNow),
	}
}
