package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/marketsim/indicators"
	"github.com/rustyeddy/marketsim/sim"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <symbol>",
	Short: "Print indicator readings for a generated series",
	Long: `Generate a series and print its change, range, VWAP, SMA(20),
EMA(50), ATR(14) and RSI(14). Readings that need more bars than the series
has are shown as "-".

Example:
  marketsim summary MSFT -i 15m`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

var sumFlags seriesFlags

func init() {
	rootCmd.AddCommand(summaryCmd)
	addSeriesFlags(summaryCmd, &sumFlags)
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	symbol := strings.ToUpper(args[0])
	opts, err := seriesOptions(cmd, cfg, symbol, sumFlags)
	if err != nil {
		return err
	}
	opts.Now = time.Now().UTC()

	candles, err := sim.GenerateSeries(symbol, opts)
	if err != nil {
		return fmt.Errorf("generate %s: %w", symbol, err)
	}
	s := indicators.Summarize(candles)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s  (%d bars, seed %q)\n", symbol, opts.Interval, s.Bars, opts.SeedFor(symbol))
	fmt.Fprintf(out, "  Last:    %10.2f  (%+.2f%%)\n", s.Last, s.ChangePct)
	fmt.Fprintf(out, "  Range:   %10.2f - %.2f\n", s.Low, s.High)
	fmt.Fprintf(out, "  Volume:  %10d\n", s.Volume)
	fmt.Fprintf(out, "  VWAP:    %10.2f\n", s.VWAP)
	fmt.Fprintf(out, "  SMA(20): %10s\n", reading(s.SMA20))
	fmt.Fprintf(out, "  EMA(50): %10s\n", reading(s.EMA50))
	fmt.Fprintf(out, "  ATR(14): %10s\n", reading(s.ATR14))
	fmt.Fprintf(out, "  RSI(14): %10s\n", reading(s.RSI14))
	return nil
}

func reading(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
