package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the marketsim CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "marketsim version %s\n", version)
		fmt.Fprintln(out, "Deterministic synthetic market data for demos and tests")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
