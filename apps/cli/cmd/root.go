package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "domspec",
	Short: "Declarative browser checks. Answers correlated, not awaited.",
	Long: `domspec runs browser assertions from plain YAML scenarios.
Checks are issued through a sequential command queue, answered
asynchronously on the driver's message stream, and matched back to
their check by identifier. Answers can come from a live WebSocket
driver or from canned responses embedded in the scenario itself.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}
