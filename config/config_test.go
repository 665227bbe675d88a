package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/marketsim/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "1H", cfg.Generator.Interval)
	assert.Equal(t, 2.0, cfg.Generator.DailyVolPct)
	assert.True(t, cfg.Generator.MarketHoursOnly)
	assert.Len(t, cfg.Feeds.Symbols, len(market.DefaultTickers))
	assert.Equal(t, market.H1, cfg.GeneratorInterval())
	assert.Equal(t, market.H1, cfg.FeedInterval())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(*Config) {}, ""},
		{"bad interval", func(c *Config) { c.Generator.Interval = "2H" }, "generator.interval"},
		{"negative bars", func(c *Config) { c.Generator.Bars = -1 }, "generator.bars must not be negative"},
		{"negative vol", func(c *Config) { c.Generator.DailyVolPct = -2 }, "generator.daily_vol_pct"},
		{"bad feed interval", func(c *Config) { c.Feeds.Interval = "" }, "feeds.interval"},
		{"empty symbol", func(c *Config) { c.Feeds.Symbols = []string{"AAPL", " "} }, "feeds.symbols"},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }, "server.addr is required"},
		{"bad cron", func(c *Config) { c.Server.TickEvery = "every second" }, "server.tick_every"},
		{"six field cron", func(c *Config) { c.Server.TickEvery = "*/5 * * * * *" }, ""},
		{"csv without file", func(c *Config) { c.Journal.Type = JournalCSV }, "candles_file required"},
		{"sqlite without path", func(c *Config) { c.Journal.Type = JournalSQLite }, "db_path required"},
		{"unknown journal", func(c *Config) { c.Journal.Type = "redis" }, "journal.type"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
		{"yml format", ".yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Generator.Seed = "demo"
			cfg.Journal = JournalConfig{Type: JournalSQLite, DBPath: "runs.db"}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator:\n  interval: 5m\n  daily_vol_pct: 3\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, market.M5, cfg.GeneratorInterval())
	assert.Equal(t, 3.0, cfg.Generator.DailyVolPct)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "1H", cfg.Feeds.Interval)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator:\n  interval: 7m\n"), 0644))
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
