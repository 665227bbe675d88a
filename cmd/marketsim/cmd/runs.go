package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/marketsim/journal"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Query recorded generation runs",
	Long: `Query generation runs recorded in a SQLite journal.

Subcommands:
  list  - List recorded runs, newest first
  show  - Print the candles of one run

Examples:
  marketsim runs list -d marketsim.sqlite
  marketsim runs show <run-id> --format csv`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the candles of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var (
	runsDBPath string
	runsFormat string
)

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)

	runsCmd.PersistentFlags().StringVarP(&runsDBPath, "db", "d", "./marketsim.sqlite", "path to SQLite journal DB")
	runsShowCmd.Flags().StringVar(&runsFormat, "format", formatJSON, "output format: json, yaml or csv")
}

func runRunsList(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(runsDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}
	fmt.Fprintf(out, "%-26s %-6s %-4s %6s  %-20s %s\n", "RUN", "SYMBOL", "IV", "BARS", "GENERATED", "SEED")
	for _, r := range runs {
		fmt.Fprintf(out, "%-26s %-6s %-4s %6d  %-20s %s\n",
			r.RunID, r.Symbol, r.Interval, r.Bars, r.GeneratedAt.UTC().Format(time.RFC3339), r.Seed)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(runsDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	candles, err := j.ListCandlesByRunID(args[0])
	if err != nil {
		return fmt.Errorf("query candles: %w", err)
	}
	if len(candles) == 0 {
		return fmt.Errorf("run %s not found", args[0])
	}
	return writeCandles(cmd.OutOrStdout(), runsFormat, candles)
}
