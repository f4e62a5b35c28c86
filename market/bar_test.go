package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func flatSeries(n int, close float64) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = Bar{Date: day(i), Open: close, High: close, Low: close, Close: close, Volume: 1000}
	}
	return s
}

func TestSeriesValidate(t *testing.T) {
	t.Run("empty series is invalid", func(t *testing.T) {
		assert.Error(t, Series{}.Validate())
	})

	t.Run("valid series", func(t *testing.T) {
		assert.NoError(t, flatSeries(5, 100).Validate())
	})

	t.Run("out of order dates", func(t *testing.T) {
		s := flatSeries(3, 100)
		s[1].Date = day(5)
		err := s.Validate()
		assert.ErrorContains(t, err, "out of order")
	})

	t.Run("duplicate dates", func(t *testing.T) {
		s := flatSeries(3, 100)
		s[1].Date = s[0].Date
		err := s.Validate()
		assert.ErrorContains(t, err, "duplicate date")
	})

	t.Run("non-positive close", func(t *testing.T) {
		s := flatSeries(3, 100)
		s[2].Close = 0
		assert.ErrorContains(t, s.Validate(), "close must be positive")
	})
}

func TestSeriesFilterRange(t *testing.T) {
	s := flatSeries(10, 100)

	t.Run("nil bounds return everything", func(t *testing.T) {
		assert.Len(t, s.FilterRange(nil, nil), 10)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		start := day(2)
		end := day(7)
		got := s.FilterRange(&start, &end)
		assert.Len(t, got, 6)
		assert.Equal(t, day(2), got[0].Date)
		assert.Equal(t, day(7), got[len(got)-1].Date)
	})

	t.Run("range outside data is empty", func(t *testing.T) {
		start := day(100)
		assert.Empty(t, s.FilterRange(&start, nil))
	})

	t.Run("open-ended start", func(t *testing.T) {
		end := day(3)
		assert.Len(t, s.FilterRange(nil, &end), 4)
	})
}

func TestSeriesWindow(t *testing.T) {
	s := flatSeries(10, 100)

	assert.Len(t, s.Window(0), 1)
	assert.Len(t, s.Window(4), 5)
	assert.Len(t, s.Window(9), 10)
	assert.Len(t, s.Window(50), 10, "index past the end clamps to the full series")
	assert.Nil(t, s.Window(-1))
}
