package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratbench/stratbench/backtest"
	"github.com/stratbench/stratbench/metrics"
	"github.com/stratbench/stratbench/scoring"
	"github.com/stratbench/stratbench/sim"
	"github.com/stratbench/stratbench/strategies"
)

func sampleResult() *backtest.Result {
	d0 := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	d1 := d0.AddDate(0, 0, 1)
	d2 := d0.AddDate(0, 0, 2)

	return &backtest.Result{
		StrategyID:     "sma-cross",
		Symbol:         "TEST",
		Start:          d0,
		End:            d2,
		InitialCapital: 100_000,
		FinalValue:     100_950,
		Trades: []sim.Trade{
			{Date: d0, Action: strategies.Buy, Price: 100.05, Shares: 99,
				TotalCost: 9914.85, Commission: 9.90, Fee: 5, Reasoning: "cross up"},
			{Date: d2, Action: strategies.Sell, Price: 109.945, Shares: -99,
				TotalProceeds: 10868.67, Commission: 10.88, Fee: 5, Reasoning: "cross down"},
		},
		EquityCurve: []backtest.EquityPoint{
			{Date: d0, Value: 99_985, Price: 100, Shares: 99},
			{Date: d1, Value: 100_975, Price: 110, Shares: 99},
			{Date: d2, Value: 100_950, Price: 110, Shares: 0},
		},
		DrawdownSeries: []backtest.DrawdownPoint{
			{Date: d0, Drawdown: 0.00015, Peak: 100_000},
			{Date: d1, Drawdown: 0, Peak: 100_975},
			{Date: d2, Drawdown: 0.0002, Peak: 100_975},
		},
		Metrics: metrics.Metrics{
			TotalTrades: 1, WinningTrades: 1, WinRate: 1,
			TotalReturn: 979.6, TotalReturnPct: 0.0098, SharpeRatio: 0,
		},
		Score: scoring.Score{Total: 48, Grade: "D"},
	}
}

func openTestJournal(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSQLiteRecordAndGetRun(t *testing.T) {
	j := openTestJournal(t)

	runID, err := j.RecordRun(sampleResult())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	rec, trades, equity, err := j.GetRun(runID)
	require.NoError(t, err)

	assert.Equal(t, runID, rec.RunID)
	assert.Equal(t, "sma-cross", rec.Strategy)
	assert.Equal(t, "TEST", rec.Symbol)
	assert.Equal(t, 100_000.0, rec.InitialCapital)
	assert.Equal(t, 100_950.0, rec.FinalValue)
	assert.Equal(t, 1, rec.TotalTrades)
	assert.Equal(t, "D", rec.Grade)

	require.Len(t, trades, 2)
	assert.Equal(t, "BUY", trades[0].Action)
	assert.Equal(t, 100.05, trades[0].Price)
	assert.Equal(t, "SELL", trades[1].Action)
	assert.Equal(t, "cross down", trades[1].Reasoning)

	require.Len(t, equity, 3)
	assert.Equal(t, 99_985.0, equity[0].Value)
	assert.Equal(t, 0.0002, equity[2].Drawdown)
}

func TestSQLiteListRuns(t *testing.T) {
	j := openTestJournal(t)

	id1, err := j.RecordRun(sampleResult())
	require.NoError(t, err)
	id2, err := j.RecordRun(sampleResult())
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2, "every run gets its own ID")

	runs, err := j.ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLiteGetRunMissing(t *testing.T) {
	j := openTestJournal(t)
	_, _, _, err := j.GetRun("no-such-run")
	assert.Error(t, err)
}
