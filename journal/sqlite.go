package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stratbench/stratbench/backtest"
	"github.com/stratbench/stratbench/pkg/id"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

// RecordRun stores the complete run in one transaction and returns the
// freshly assigned run ID. IDs are assigned here so the engine's results
// stay deterministic.
func (j *SQLiteJournal) RecordRun(r *backtest.Result) (string, error) {
	runID := id.New()

	tx, err := j.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs
		(run_id, created, strategy, symbol, start_date, end_date, initial_capital, final_value,
		 total_trades, win_rate, sharpe, max_drawdown, score, grade)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC(), r.StrategyID, r.Symbol, r.Start, r.End,
		r.InitialCapital, r.FinalValue,
		r.Metrics.TotalTrades, r.Metrics.WinRate, r.Metrics.SharpeRatio,
		r.Metrics.MaxDrawdown, r.Score.Total, r.Score.Grade,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, t := range r.Trades {
		_, err = tx.Exec(`
			INSERT INTO trades
			(run_id, date, action, price, shares, cost, proceeds, commission, fee, reasoning)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, t.Date, string(t.Action), t.Price, t.Shares,
			t.TotalCost, t.TotalProceeds, t.Commission, t.Fee, t.Reasoning,
		)
		if err != nil {
			return "", fmt.Errorf("insert trade: %w", err)
		}
	}

	for i, p := range r.EquityCurve {
		dd := 0.0
		if i < len(r.DrawdownSeries) {
			dd = r.DrawdownSeries[i].Drawdown
		}
		_, err = tx.Exec(`
			INSERT INTO equity (run_id, date, value, price, shares, drawdown)
			VALUES (?, ?, ?, ?, ?, ?)`,
			runID, p.Date, p.Value, p.Price, p.Shares, dd,
		)
		if err != nil {
			return "", fmt.Errorf("insert equity: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

func (j *SQLiteJournal) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, strategy, symbol, start_date, end_date,
		       initial_capital, final_value, total_trades, win_rate,
		       sharpe, max_drawdown, score, grade
		FROM runs ORDER BY run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		err := rows.Scan(&r.RunID, &r.Created, &r.Strategy, &r.Symbol,
			&r.Start, &r.End, &r.InitialCapital, &r.FinalValue,
			&r.TotalTrades, &r.WinRate, &r.Sharpe, &r.MaxDrawdown,
			&r.Score, &r.Grade)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) GetRun(runID string) (RunRecord, []TradeRow, []EquityRow, error) {
	var rec RunRecord
	err := j.db.QueryRow(`
		SELECT run_id, created, strategy, symbol, start_date, end_date,
		       initial_capital, final_value, total_trades, win_rate,
		       sharpe, max_drawdown, score, grade
		FROM runs WHERE run_id = ?`, runID).
		Scan(&rec.RunID, &rec.Created, &rec.Strategy, &rec.Symbol,
			&rec.Start, &rec.End, &rec.InitialCapital, &rec.FinalValue,
			&rec.TotalTrades, &rec.WinRate, &rec.Sharpe, &rec.MaxDrawdown,
			&rec.Score, &rec.Grade)
	if err != nil {
		return rec, nil, nil, fmt.Errorf("run %q: %w", runID, err)
	}

	trows, err := j.db.Query(`
		SELECT run_id, date, action, price, shares, cost, proceeds, commission, fee, reasoning
		FROM trades WHERE run_id = ? ORDER BY date`, runID)
	if err != nil {
		return rec, nil, nil, err
	}
	defer trows.Close()

	var trades []TradeRow
	for trows.Next() {
		var t TradeRow
		err := trows.Scan(&t.RunID, &t.Date, &t.Action, &t.Price, &t.Shares,
			&t.Cost, &t.Proceeds, &t.Commission, &t.Fee, &t.Reasoning)
		if err != nil {
			return rec, nil, nil, err
		}
		trades = append(trades, t)
	}
	if err := trows.Err(); err != nil {
		return rec, nil, nil, err
	}

	erows, err := j.db.Query(`
		SELECT run_id, date, value, price, shares, drawdown
		FROM equity WHERE run_id = ? ORDER BY date`, runID)
	if err != nil {
		return rec, nil, nil, err
	}
	defer erows.Close()

	var equity []EquityRow
	for erows.Next() {
		var e EquityRow
		if err := erows.Scan(&e.RunID, &e.Date, &e.Value, &e.Price, &e.Shares, &e.Drawdown); err != nil {
			return rec, nil, nil, err
		}
		equity = append(equity, e)
	}
	return rec, trades, equity, erows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
