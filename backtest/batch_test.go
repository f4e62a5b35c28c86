package backtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatchCollectAndContinue(t *testing.T) {
	e := NewEngine()
	bars := flatSeries(25, 100)

	reqs := map[string]Request{
		"ok-noop":     {StrategyID: "noop", Symbol: "TEST", Bars: bars, InitialCapital: 100_000},
		"ok-chatty":   {StrategyID: "chatty", Symbol: "TEST", Bars: bars, InitialCapital: 100_000},
		"bad-name":    {StrategyID: "no-such-strategy", Bars: bars, InitialCapital: 100_000},
		"bad-capital": {StrategyID: "noop", Bars: bars, InitialCapital: -1},
	}

	out := e.RunBatch(context.Background(), reqs, 2)
	require.Len(t, out, len(reqs), "every item reports an outcome")

	require.NoError(t, out["ok-noop"].Err)
	assert.Equal(t, 100_000.0, out["ok-noop"].Result.FinalValue)
	require.NoError(t, out["ok-chatty"].Err)

	assert.ErrorIs(t, out["bad-name"].Err, ErrConfig)
	assert.Nil(t, out["bad-name"].Result)
	assert.ErrorIs(t, out["bad-capital"].Err, ErrInput)
}

func TestRunBatchEmpty(t *testing.T) {
	e := NewEngine()
	out := e.RunBatch(context.Background(), nil, 4)
	assert.Empty(t, out)
}

func TestRunBatchDefaultWorkers(t *testing.T) {
	e := NewEngine()
	out := e.RunBatch(context.Background(), map[string]Request{
		"only": {StrategyID: "noop", Bars: flatSeries(25, 100), InitialCapital: 1000},
	}, 0)
	require.Len(t, out, 1)
	assert.NoError(t, out["only"].Err)
}
