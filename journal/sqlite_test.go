package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/marketsim/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteJournal, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func testSeries(runID string, at time.Time) SeriesRecord {
	return SeriesRecord{
		RunID:       runID,
		Symbol:      "AAPL",
		Interval:    market.M1,
		Seed:        "AAPL-1m",
		GeneratedAt: at,
		Candles: []market.Candle{
			{Time: 120, Open: 182.52, High: 183.1, Low: 182.0, Close: 182.9, Volume: 700},
			{Time: 60, Open: 182.0, High: 182.7, Low: 181.8, Close: 182.52, Volume: 650},
			{Time: 180, Open: 182.9, High: 183.0, Low: 182.1, Close: 182.4, Volume: 720},
		},
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','candles','fills')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["candles"])
	assert.True(t, found["fills"])
}

func TestSQLiteEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewSQLite("")
	assert.Error(t, err)
}

func TestSQLiteRecordSeries(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	at := time.Date(2024, 3, 13, 17, 45, 0, 0, time.UTC)

	require.NoError(t, j.RecordSeries(testSeries("R1", at)))

	got, err := j.GetRun("R1")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, market.M1, got.Interval)
	assert.Equal(t, "AAPL-1m", got.Seed)
	assert.True(t, at.Equal(got.GeneratedAt))
	require.Len(t, got.Candles, 3)

	// ordered by time regardless of insert order
	assert.Equal(t, int64(60), got.Candles[0].Time)
	assert.Equal(t, int64(180), got.Candles[2].Time)
	assert.Equal(t, 182.52, got.Candles[0].Close)
	assert.Equal(t, int64(700), got.Candles[1].Volume)
}

func TestSQLiteRecordSeriesDuplicateRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	at := time.Date(2024, 3, 13, 17, 45, 0, 0, time.UTC)

	require.NoError(t, j.RecordSeries(testSeries("R1", at)))
	assert.Error(t, j.RecordSeries(testSeries("R1", at)))

	// the failed insert rolled back
	candles, err := j.ListCandlesByRunID("R1")
	require.NoError(t, err)
	assert.Len(t, candles, 3)
}

func TestSQLiteListRuns(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t0 := time.Date(2024, 3, 13, 17, 0, 0, 0, time.UTC)

	require.NoError(t, j.RecordSeries(testSeries("R1", t0)))
	s2 := testSeries("R2", t0.Add(time.Hour))
	s2.Symbol = "MSFT"
	s2.Candles = s2.Candles[:1]
	require.NoError(t, j.RecordSeries(s2))

	runs, err := j.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "R2", runs[0].RunID)
	assert.Equal(t, "MSFT", runs[0].Symbol)
	assert.Equal(t, 1, runs[0].Bars)
	assert.Equal(t, "R1", runs[1].RunID)
	assert.Equal(t, 3, runs[1].Bars)
}

func TestSQLiteGetRunMissing(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	_, err := j.GetRun("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	candles, err := j.ListCandlesByRunID("nope")
	require.NoError(t, err)
	assert.Empty(t, candles)
}

func TestSQLiteRecordFill(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t0 := time.Date(2024, 3, 13, 17, 0, 0, 0, time.UTC)

	require.NoError(t, j.RecordFill(FillRecord{ID: "F2", Symbol: "AAPL", Side: "SELL", Qty: 50, Price: 183, Time: t0.Add(time.Minute)}))
	require.NoError(t, j.RecordFill(FillRecord{ID: "F1", Symbol: "AAPL", Side: "BUY", Qty: 100, Price: 182.5, Time: t0}))
	require.NoError(t, j.RecordFill(FillRecord{ID: "F3", Symbol: "MSFT", Side: "BUY", Qty: 10, Price: 378.85, Time: t0}))

	fills, err := j.ListFills("AAPL")
	require.NoError(t, err)
	require.Len(t, fills, 2)
	assert.Equal(t, "F1", fills[0].ID)
	assert.Equal(t, "BUY", fills[0].Side)
	assert.Equal(t, int64(100), fills[0].Qty)
	assert.True(t, t0.Equal(fills[0].Time))
	assert.Equal(t, "F2", fills[1].ID)

	all, err := j.ListFills("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
