package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	interval TEXT NOT NULL,
	seed TEXT NOT NULL,
	generated_at DATETIME NOT NULL,
	bars INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS candles (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	time INTEGER NOT NULL,
	open REAL NOT NULL,
	high REAL NOT NULL,
	low REAL NOT NULL,
	close REAL NOT NULL,
	volume INTEGER NOT NULL,
	PRIMARY KEY (run_id, time)
);

CREATE TABLE IF NOT EXISTS fills (
	fill_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	qty INTEGER NOT NULL,
	price REAL NOT NULL,
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fills_symbol ON fills(symbol, time);
`
