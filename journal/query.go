package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/marketsim/market"
)

// RunInfo is a runs row without its candles.
type RunInfo struct {
	RunID       string
	Symbol      string
	Interval    market.Interval
	Seed        string
	GeneratedAt time.Time
	Bars        int
}

// ListRuns returns every stored run, newest first.
func (j *SQLiteJournal) ListRuns() ([]RunInfo, error) {
	rows, err := j.db.Query(`
		SELECT run_id, symbol, interval, seed, generated_at, bars
		FROM runs
		ORDER BY generated_at DESC, run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var r RunInfo
		var iv string
		if err := rows.Scan(&r.RunID, &r.Symbol, &iv, &r.Seed, &r.GeneratedAt, &r.Bars); err != nil {
			return nil, err
		}
		r.Interval = market.Interval(iv)
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRun returns the run and its candles ordered by time.
func (j *SQLiteJournal) GetRun(runID string) (SeriesRecord, error) {
	var rec SeriesRecord
	var iv string
	var bars int

	err := j.db.QueryRow(`
		SELECT run_id, symbol, interval, seed, generated_at, bars
		FROM runs WHERE run_id = ?`, runID,
	).Scan(&rec.RunID, &rec.Symbol, &iv, &rec.Seed, &rec.GeneratedAt, &bars)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SeriesRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return SeriesRecord{}, err
	}
	rec.Interval = market.Interval(iv)

	rec.Candles, err = j.ListCandlesByRunID(runID)
	if err != nil {
		return SeriesRecord{}, err
	}
	return rec, nil
}

// ListCandlesByRunID returns the run's candles ordered by time.
func (j *SQLiteJournal) ListCandlesByRunID(runID string) ([]market.Candle, error) {
	rows, err := j.db.Query(`
		SELECT time, open, high, low, close, volume
		FROM candles
		WHERE run_id = ?
		ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []market.Candle{}
	for rows.Next() {
		var c market.Candle
		if err := rows.Scan(&c.Time, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListFills returns fills for symbol, oldest first. An empty symbol lists all.
func (j *SQLiteJournal) ListFills(symbol string) ([]FillRecord, error) {
	q := `SELECT fill_id, symbol, side, qty, price, time FROM fills`
	var args []any
	if symbol != "" {
		q += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	q += ` ORDER BY time ASC, fill_id ASC`

	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FillRecord
	for rows.Next() {
		var f FillRecord
		if err := rows.Scan(&f.ID, &f.Symbol, &f.Side, &f.Qty, &f.Price, &f.Time); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
