package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	candleHeader = []string{"run_id", "symbol", "interval", "time", "open", "high", "low", "close", "volume"}
	fillHeader   = []string{"fill_id", "symbol", "side", "qty", "price", "time"}
)

// CSVJournal appends candles and fills to two CSV files. An empty fills path
// discards fills.
type CSVJournal struct {
	mu      sync.Mutex
	candles *csv.Writer
	fills   *csv.Writer
	cf, ff  *os.File
}

func NewCSV(candlesPath, fillsPath string) (*CSVJournal, error) {
	cf, err := os.Create(candlesPath)
	if err != nil {
		return nil, err
	}
	j := &CSVJournal{cf: cf, candles: csv.NewWriter(cf)}

	if fillsPath != "" {
		ff, err := os.Create(fillsPath)
		if err != nil {
			_ = cf.Close()
			return nil, err
		}
		j.ff = ff
		j.fills = csv.NewWriter(ff)
	}

	if err := j.writeRow(j.candles, candleHeader); err != nil {
		_ = j.Close()
		return nil, err
	}
	if j.fills != nil {
		if err := j.writeRow(j.fills, fillHeader); err != nil {
			_ = j.Close()
			return nil, err
		}
	}
	return j, nil
}

func (j *CSVJournal) RecordSeries(s SeriesRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, c := range s.Candles {
		err := j.candles.Write([]string{
			s.RunID,
			s.Symbol,
			string(s.Interval),
			strconv.FormatInt(c.Time, 10),
			f(c.Open),
			f(c.High),
			f(c.Low),
			f(c.Close),
			strconv.FormatInt(c.Volume, 10),
		})
		if err != nil {
			return err
		}
	}
	j.candles.Flush()
	return j.candles.Error()
}

func (j *CSVJournal) RecordFill(fr FillRecord) error {
	if j.fills == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.writeRow(j.fills, []string{
		fr.ID,
		fr.Symbol,
		fr.Side,
		strconv.FormatInt(fr.Qty, 10),
		f(fr.Price),
		fr.Time.UTC().Format(time.RFC3339),
	})
}

func (j *CSVJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	j.candles.Flush()
	keep(j.candles.Error())
	keep(j.cf.Close())
	if j.fills != nil {
		j.fills.Flush()
		keep(j.fills.Error())
		keep(j.ff.Close())
	}
	return firstErr
}

func (j *CSVJournal) writeRow(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
