package strategies

import (
	"fmt"
	"math"

	"github.com/stratbench/stratbench/indicators"
	"github.com/stratbench/stratbench/market"
)

// Momentum signals on the rate of change of the close: BUY when it exceeds
// +threshold over the lookback period, SELL below -threshold.
type Momentum struct {
	Period    int
	Threshold float64
}

func init() {
	Register("momentum", func(params map[string]float64) (Strategy, error) {
		s := &Momentum{
			Period:    int(param(params, "period", 10)),
			Threshold: param(params, "threshold", 0.03),
		}
		if s.Period <= 0 {
			return nil, fmt.Errorf("momentum: period must be positive, got %d", s.Period)
		}
		if s.Threshold <= 0 {
			return nil, fmt.Errorf("momentum: threshold must be positive, got %v", s.Threshold)
		}
		return s, nil
	})
}

func (s *Momentum) Name() string { return "momentum" }

func (s *Momentum) GenerateSignal(_ string, window market.Series) *Signal {
	roc, err := indicators.ROC(window, s.Period)
	if err != nil {
		return nil
	}
	if math.Abs(roc) < s.Threshold {
		return nil
	}

	last := window[len(window)-1]
	conf := clamp01(math.Abs(roc) / (2 * s.Threshold))

	if roc > 0 {
		return &Signal{
			Action:     Buy,
			Price:      last.Close,
			Confidence: conf,
			Reasoning:  fmt.Sprintf("%d-bar momentum %+.2f%% above %.2f%% threshold", s.Period, roc*100, s.Threshold*100),
		}
	}
	return &Signal{
		Action:     Sell,
		Price:      last.Close,
		Confidence: conf,
		Reasoning:  fmt.Sprintf("%d-bar momentum %+.2f%% below -%.2f%% threshold", s.Period, roc*100, s.Threshold*100),
	}
}
