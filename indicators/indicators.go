// Package indicators provides the technical indicators used by the built-in
// strategies. All functions operate on a closed-bar series and are
// deterministic.
package indicators

import (
	"fmt"

	"github.com/stratbench/stratbench/market"
)

// SMA calculates the Simple Moving Average of the closes over the last
// period bars.
func SMA(bars market.Series, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(bars) < period {
		return 0, fmt.Errorf("not enough bars: need %d, got %d", period, len(bars))
	}

	sum := 0.0
	for i := len(bars) - period; i < len(bars); i++ {
		sum += bars[i].Close
	}
	return sum / float64(period), nil
}

// EMA calculates the Exponential Moving Average of the closes, seeded with
// the SMA of the first period bars.
func EMA(bars market.Series, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(bars) < period {
		return 0, fmt.Errorf("not enough bars: need %d, got %d", period, len(bars))
	}

	multiplier := 2.0 / float64(period+1)

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += bars[i].Close
	}
	ema := seed / float64(period)

	for i := period; i < len(bars); i++ {
		ema = (bars[i].Close-ema)*multiplier + ema
	}
	return ema, nil
}

// RSI calculates the Relative Strength Index over the last period changes.
// Returns 100 when there were no losses in the window.
func RSI(bars market.Series, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(bars) < period+1 {
		return 0, fmt.Errorf("not enough bars: need %d, got %d", period+1, len(bars))
	}

	var gains, losses float64
	for i := len(bars) - period; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	if losses == 0 {
		return 100, nil
	}
	rs := (gains / float64(period)) / (losses / float64(period))
	return 100 - 100/(1+rs), nil
}

// ROC calculates the rate of change of the close over the last period bars:
// (close - close[period ago]) / close[period ago].
func ROC(bars market.Series, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(bars) < period+1 {
		return 0, fmt.Errorf("not enough bars: need %d, got %d", period+1, len(bars))
	}

	base := bars[len(bars)-1-period].Close
	if base == 0 {
		return 0, fmt.Errorf("zero base close %d bars ago", period)
	}
	return (bars[len(bars)-1].Close - base) / base, nil
}
