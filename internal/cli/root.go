// Package cli provides the Cobra-based CLI for the storefront service.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Order-management core for a storefront",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Best effort: a missing .env is the normal case outside local dev.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, simulateCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
