package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "betchain",
	Short: "Deterministic betting matching and settlement engine",
	Long: `betchain runs a deterministic prediction-market betting engine:
games with fixed market sets, peer-matched bets at coupled fractional
odds, and moderator-posted results.

State advances in blocks. Operations submitted over HTTP are queued
and applied in arrival order on the next block; all arithmetic is
integer-exact so replaying the same operations yields the same state.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
