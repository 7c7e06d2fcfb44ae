package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gatehouse",
	Short: "Sign-in portal for a hosted auth provider",
	Long: `Gatehouse serves the sign-in and sign-up UI and delegates all
authentication work to an external hosted auth provider.

Use "gatehouse [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
