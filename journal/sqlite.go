package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite journal: empty path")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

// RecordSeries stores the run and all of its candles in one transaction.
func (j *SQLiteJournal) RecordSeries(s SeriesRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO runs (run_id, symbol, interval, seed, generated_at, bars)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Symbol, string(s.Interval), s.Seed, s.GeneratedAt.UTC(), len(s.Candles),
	); err != nil {
		return fmt.Errorf("insert run %s: %w", s.RunID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO candles (run_id, time, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range s.Candles {
		if _, err := stmt.Exec(s.RunID, c.Time, c.Open, c.High, c.Low, c.Close, c.Volume); err != nil {
			return fmt.Errorf("insert candle %d: %w", c.Time, err)
		}
	}
	return tx.Commit()
}

func (j *SQLiteJournal) RecordFill(f FillRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO fills (fill_id, symbol, side, qty, price, time)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.Symbol, f.Side, f.Qty, f.Price, f.Time.UTC(),
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
