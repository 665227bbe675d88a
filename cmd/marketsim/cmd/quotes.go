package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/sim"
	"github.com/spf13/cobra"
)

var quotesCmd = &cobra.Command{
	Use:   "quotes",
	Short: "Print the watchlist of default tickers",
	Long: `Print the default tickers with a price and change against the base.

Without --live the price is the resting price derived from the base. With
--live a feed is generated per ticker at the feeds interval and its last
close is used.

Example:
  marketsim quotes --live`,
	Args: cobra.NoArgs,
	RunE: runQuotes,
}

var quotesLive bool

func init() {
	rootCmd.AddCommand(quotesCmd)
	quotesCmd.Flags().BoolVar(&quotesLive, "live", false, "price from generated feeds")
}

func runQuotes(cmd *cobra.Command, args []string) error {
	last := map[string]float64{}
	if quotesLive {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		iv := cfg.FeedInterval()
		now := time.Now().UTC()
		for _, sym := range market.Symbols() {
			f, err := sim.NewFeed(sym, iv, sim.FeedOptions{
				DailyVolPct: cfg.Generator.DailyVolPct,
				AllHours:    !cfg.Generator.MarketHoursOnly,
				Now:         now,
			})
			if err != nil {
				return fmt.Errorf("feed %s: %w", sym, err)
			}
			last[sym] = f.LastPrice()
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-6s %10s %10s %8s\n", "SYMBOL", "PRICE", "BASE", "CHG%")
	for _, q := range market.Watchlist(last) {
		fmt.Fprintf(out, "%-6s %10.2f %10.2f %+7.2f%%\n", q.Symbol, q.Price, q.Base, q.ChangePct)
	}
	return nil
}
