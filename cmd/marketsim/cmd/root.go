package cmd

import (
	"github.com/rustyeddy/marketsim/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "marketsim",
	Short: "Deterministic synthetic market data for demos and tests",
	Long: `marketsim generates reproducible OHLCV candles from a seeded random walk.

It provides tools for:
  - Generating candle series for any symbol and interval
  - Extending a series one tick at a time
  - Indicator summaries and a watchlist of the default tickers
  - Serving live feeds over HTTP and WebSocket
  - Journaling generated runs to CSV or SQLite

The same symbol, interval and seed always produce the same candles.`,
	SilenceUsage: true,
}

var cfgPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (YAML or JSON); defaults apply when empty")
}

// loadConfig returns the file at --config, or the defaults.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgPath)
}
