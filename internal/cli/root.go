package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stempeluhr",
		Short: "Time-clock punch ledger",
		Long: `stempeluhr runs the time-clock service: authenticated users punch in and
out over a web form and retrieve their history as HTML, CSV or TSV.

Accounts are created out of band with the provision subcommand; the HTTP
surface never creates users.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newProvisionCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
