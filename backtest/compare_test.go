package backtest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratbench/stratbench/metrics"
	"github.com/stratbench/stratbench/scoring"
)

func scoredResult(id string, total float64) *Result {
	return &Result{
		StrategyID: id,
		Symbol:     "TEST",
		Score:      scoring.Score{Total: total, Grade: "C"},
		Metrics:    metrics.Metrics{TotalReturnPct: total / 1000},
	}
}

func TestCompareRanksDescending(t *testing.T) {
	rep := Compare([]*Result{
		scoredResult("low", 42),
		scoredResult("high", 88),
		scoredResult("mid", 61),
	})

	require.Len(t, rep.Rankings, 3)
	assert.Equal(t, []string{"high", "mid", "low"}, []string{
		rep.Rankings[0].StrategyID, rep.Rankings[1].StrategyID, rep.Rankings[2].StrategyID,
	})
	assert.Equal(t, 1, rep.Rankings[0].Rank)
	assert.Equal(t, 3, rep.Rankings[2].Rank)

	require.NotNil(t, rep.Best)
	assert.Equal(t, "high", rep.Best.StrategyID)
}

func TestCompareStableTies(t *testing.T) {
	rep := Compare([]*Result{
		scoredResult("third", 72),
		scoredResult("first", 85),
		scoredResult("second", 85),
	})

	// Equal scores keep input order, and Best is the first-seen top score.
	assert.Equal(t, "first", rep.Rankings[0].StrategyID)
	assert.Equal(t, "second", rep.Rankings[1].StrategyID)
	assert.Equal(t, "first", rep.Best.StrategyID)
}

func TestCompareEmpty(t *testing.T) {
	rep := Compare(nil)
	assert.Empty(t, rep.Rankings)
	assert.Nil(t, rep.Best)
}

func TestCompareDoesNotMutateInput(t *testing.T) {
	in := []*Result{scoredResult("a", 10), scoredResult("b", 90)}
	Compare(in)
	assert.Equal(t, "a", in[0].StrategyID)
	assert.Equal(t, "b", in[1].StrategyID)
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, Compare([]*Result{scoredResult("winner", 77)}))
	out := buf.String()
	assert.Contains(t, out, "Strategy Comparison")
	assert.Contains(t, out, "winner")
	assert.Contains(t, out, "Best: winner")

	buf.Reset()
	PrintReport(&buf, Report{})
	assert.Contains(t, buf.String(), "No results to compare.")
}
