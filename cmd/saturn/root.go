package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "saturn",
	Short: "Saturn - contract-driven routing runtime",
	Long: `Saturn loads routing contracts written as composable YAML files.

Contract files reference each other with !include directives. Saturn
resolves the includes into a single document, enforcing:
  - Cycle detection across the inclusion chain
  - Include depth and file size budgets
  - Path sandboxing (no absolute paths, no parent traversal)

Resolved contracts are validated, registered, and optionally persisted
and hot-reloaded on file change.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "saturn.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
