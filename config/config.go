package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rustyeddy/marketsim/market"
	"gopkg.in/yaml.v3"
)

const (
	JournalNone   = "none"
	JournalCSV    = "csv"
	JournalSQLite = "sqlite"
)

// CronParser accepts five or six field specs and descriptors like "@every 1s".
var CronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Config represents the complete marketsim configuration
type Config struct {
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	Feeds     FeedsConfig     `json:"feeds" yaml:"feeds"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// GeneratorConfig holds the series defaults used when a request leaves
// them out. Bars of 0 means the interval's chart window.
type GeneratorConfig struct {
	Interval        string  `json:"interval" yaml:"interval"`
	Bars            int     `json:"bars" yaml:"bars"`
	DailyVolPct     float64 `json:"daily_vol_pct" yaml:"daily_vol_pct"`
	MarketHoursOnly bool    `json:"market_hours_only" yaml:"market_hours_only"`
	Seed            string  `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// FeedsConfig lists the live feeds created at startup.
type FeedsConfig struct {
	Symbols  []string `json:"symbols" yaml:"symbols"`
	Interval string   `json:"interval" yaml:"interval"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
	// TickEvery is a cron spec; seconds are enabled, so "@every 1s" works.
	TickEvery string `json:"tick_every" yaml:"tick_every"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	CandlesFile string `json:"candles_file,omitempty" yaml:"candles_file,omitempty"`
	FillsFile   string `json:"fills_file,omitempty" yaml:"fills_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "json" or "console"
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
// on top of Default, so omitted sections keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", jerr)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := market.ParseInterval(c.Generator.Interval); err != nil {
		return fmt.Errorf("generator.interval: %w", err)
	}
	if c.Generator.Bars < 0 {
		return fmt.Errorf("generator.bars must not be negative")
	}
	if c.Generator.DailyVolPct < 0 || math.IsNaN(c.Generator.DailyVolPct) || math.IsInf(c.Generator.DailyVolPct, 0) {
		return fmt.Errorf("generator.daily_vol_pct must be a non-negative number")
	}
	if _, err := market.ParseInterval(c.Feeds.Interval); err != nil {
		return fmt.Errorf("feeds.interval: %w", err)
	}
	for _, s := range c.Feeds.Symbols {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("feeds.symbols must not contain empty names")
		}
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if _, err := CronParser.Parse(c.Server.TickEvery); err != nil {
		return fmt.Errorf("server.tick_every: %w", err)
	}
	switch c.Journal.Type {
	case JournalNone:
	case JournalCSV:
		if c.Journal.CandlesFile == "" {
			return fmt.Errorf("journal candles_file required for CSV type")
		}
	case JournalSQLite:
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be 'json' or 'console'")
	}
	return nil
}

// GeneratorInterval returns the parsed generator interval. Call after Validate.
func (c *Config) GeneratorInterval() market.Interval {
	iv, _ := market.ParseInterval(c.Generator.Interval)
	return iv
}

// FeedInterval returns the parsed feeds interval. Call after Validate.
func (c *Config) FeedInterval() market.Interval {
	iv, _ := market.ParseInterval(c.Feeds.Interval)
	return iv
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Interval:        string(market.H1),
			DailyVolPct:     2,
			MarketHoursOnly: true,
		},
		Feeds: FeedsConfig{
			Symbols:  market.Symbols(),
			Interval: string(market.H1),
		},
		Server: ServerConfig{
			Addr:      ":8080",
			TickEvery: "@every 1s",
		},
		Journal: JournalConfig{
			Type: JournalNone,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
