// Package main is the entry point for the protest CLI.
// protest minimizes failing property-test inputs and manages the
// failure database: run a shrinking strategy against an oracle
// expression, inspect saved failures, and clean them up.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Build information, set via ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Execute runs the root command.
func Execute() error {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:   "protest",
		Short: "Minimize property-test failures and manage saved counterexamples",
		Long: `protest shrinks failing property-test inputs to minimal counterexamples.

A failing input and an oracle expression (the condition that still
fails) go in; a minimal still-failing input and a shrink report come
out. Shrunk failures can be saved to a local database for replay.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", ".protest/failures.db", "path to the failure database")

	rootCmd.AddCommand(newShrinkCommand(&dbPath))
	rootCmd.AddCommand(newFailuresCommand(&dbPath))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd.Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("protest %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// stdoutIsTerminal reports whether stdout is attached to a terminal, so
// styled output can degrade to plain text in pipes and CI logs.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
