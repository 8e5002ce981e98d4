// Package cmd implements the schemadiff CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "schemadiff",
	Short: "Compare the structural definitions of two PostgreSQL schemas",
	Long:  "schemadiff introspects two PostgreSQL schemas and produces a deterministic, reviewable report of their structural differences.",
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command. Called from main().
func Execute() error {
	return rootCmd.Execute()
}
