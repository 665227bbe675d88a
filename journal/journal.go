package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/marketsim/config"
	"github.com/rustyeddy/marketsim/market"
)

// SeriesRecord is one generation run and the candles it produced.
type SeriesRecord struct {
	RunID       string
	Symbol      string
	Interval    market.Interval
	Seed        string
	GeneratedAt time.Time
	Candles     []market.Candle
}

// FillRecord is one paper fill from the blotter.
type FillRecord struct {
	ID     string
	Symbol string
	Side   string
	Qty    int64
	Price  float64
	Time   time.Time
}

type Journal interface {
	RecordSeries(SeriesRecord) error
	RecordFill(FillRecord) error
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordSeries(SeriesRecord) error { return nil }
func (Nop) RecordFill(FillRecord) error     { return nil }
func (Nop) Close() error                    { return nil }

// Open builds the journal described by cfg.
func Open(cfg config.JournalConfig) (Journal, error) {
	switch cfg.Type {
	case "", config.JournalNone:
		return Nop{}, nil
	case config.JournalCSV:
		return NewCSV(cfg.CandlesFile, cfg.FillsFile)
	case config.JournalSQLite:
		return NewSQLite(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Type)
	}
}
