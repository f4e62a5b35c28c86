// Package market holds the historical price data model consumed by the
// backtest engine: OHLCV bars and ordered bar series.
package market

import (
	"fmt"
	"time"
)

// Bar represents one OHLCV bar of historical price data. Bars are immutable
// once ingested.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is an ordered sequence of bars, non-decreasing by date with no
// duplicate dates.
type Series []Bar

// Validate checks the series ordering rules. An empty series is invalid.
func (s Series) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("empty series")
	}
	for i, b := range s {
		if b.Date.IsZero() {
			return fmt.Errorf("bar %d: zero date", i)
		}
		if b.Close <= 0 {
			return fmt.Errorf("bar %d (%s): close must be positive, got %v",
				i, b.Date.Format("2006-01-02"), b.Close)
		}
		if i > 0 {
			prev := s[i-1].Date
			if b.Date.Before(prev) {
				return fmt.Errorf("bar %d (%s): out of order, previous is %s",
					i, b.Date.Format("2006-01-02"), prev.Format("2006-01-02"))
			}
			if b.Date.Equal(prev) {
				return fmt.Errorf("bar %d (%s): duplicate date", i, b.Date.Format("2006-01-02"))
			}
		}
	}
	return nil
}

// FilterRange returns the sub-series within [start, end], bounds inclusive.
// A nil bound leaves that side open. The result shares the backing array.
func (s Series) FilterRange(start, end *time.Time) Series {
	lo := 0
	if start != nil {
		for lo < len(s) && s[lo].Date.Before(*start) {
			lo++
		}
	}
	hi := len(s)
	if end != nil {
		for hi > lo && s[hi-1].Date.After(*end) {
			hi--
		}
	}
	return s[lo:hi]
}

// Window returns the bars visible at index i, i.e. s[0..i] inclusive.
// The window shares the backing array; callers must treat it as read-only.
func (s Series) Window(i int) Series {
	if i < 0 {
		return nil
	}
	if i >= len(s) {
		i = len(s) - 1
	}
	return s[:i+1]
}

// Closes extracts the close prices in order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}
