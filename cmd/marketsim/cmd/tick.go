package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/sim"
	"github.com/spf13/cobra"
)

var tickCmd = &cobra.Command{
	Use:   "tick [symbol]",
	Short: "Extend a series by one or more ticks",
	Long: `Produce the next candles after a given last candle.

With --last the ticks follow that candle. Otherwise a series is generated
for the symbol first and the ticks follow its final bar. Tick seeds default
to the symbol, so the same last candle always yields the same next one.

Examples:
  marketsim tick AAPL -i 1m -k 5
  marketsim tick --last '{"time":1710351900,"open":100,"high":101,"low":99,"close":100.5,"volume":2000}' -i 1m --seed AAPL`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTick,
}

var (
	tickFlags  seriesFlags
	tickCount  int
	tickLast   string
	tickFormat string
)

func init() {
	rootCmd.AddCommand(tickCmd)

	addSeriesFlags(tickCmd, &tickFlags)
	tickCmd.Flags().IntVarP(&tickCount, "count", "k", 1, "number of ticks")
	tickCmd.Flags().StringVar(&tickLast, "last", "", "last candle as JSON")
	tickCmd.Flags().StringVar(&tickFormat, "format", formatJSON, "output format: json, yaml or csv")
}

func runTick(cmd *cobra.Command, args []string) error {
	if tickCount < 1 {
		return errors.New("--count must be at least 1")
	}
	if tickLast == "" && len(args) == 0 {
		return errors.New("need a symbol or --last")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	symbol := ""
	if len(args) == 1 {
		symbol = strings.ToUpper(args[0])
	}
	opts, err := seriesOptions(cmd, cfg, symbol, tickFlags)
	if err != nil {
		return err
	}

	var last market.Candle
	if tickLast != "" {
		if err := json.Unmarshal([]byte(tickLast), &last); err != nil {
			return fmt.Errorf("parse --last: %w", err)
		}
		if !last.Valid() {
			return fmt.Errorf("--last is not a valid candle")
		}
	} else {
		opts.Now = time.Now().UTC()
		candles, err := sim.GenerateSeries(symbol, opts)
		if err != nil {
			return fmt.Errorf("generate %s: %w", symbol, err)
		}
		if len(candles) == 0 {
			return errors.New("series is empty; use --bars > 0")
		}
		last = candles[len(candles)-1]
	}

	seed := symbol
	if cmd.Flags().Changed("seed") {
		seed = tickFlags.seed
	}

	ticks := make([]market.Candle, 0, tickCount)
	for i := 0; i < tickCount; i++ {
		last = sim.NextTickFromLast(last, opts.Interval, opts.DailyVolPct, seed)
		ticks = append(ticks, last)
	}
	return writeCandles(cmd.OutOrStdout(), tickFormat, ticks)
}
