package strategies

import "github.com/stratbench/stratbench/market"

// Noop never signals. Useful as a baseline run.
type Noop struct{}

func init() {
	Register("noop", func(map[string]float64) (Strategy, error) {
		return Noop{}, nil
	})
}

func (Noop) Name() string { return "noop" }

func (Noop) GenerateSignal(string, market.Series) *Signal { return nil }
