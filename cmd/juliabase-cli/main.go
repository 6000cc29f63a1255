// Package main is the entry point for the juliabase-cli application.
// It initializes the root command and registers the sample, deposition, and
// crawler sub-commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"

	commands "github.com/juliabase/juliabase/cmd/juliabase-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "juliabase-cli",
		Short: "Lab bookkeeping CLI tool",
		Long: `juliabase-cli talks to a juliabase server over the JSON remote protocol.
It looks up and registers samples, records deposition runs, and runs
instrument crawlers that import data files as processes.

Credentials come from the JULIABASE_LOGIN and JULIABASE_PASSWORD environment
variables; the server address from --server or JULIABASE_SERVER.`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitSampleCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize sample commands: %w", err)
	}

	if err := commands.InitDepositionCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize deposition commands: %w", err)
	}

	if err := commands.InitCrawlerCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize crawler commands: %w", err)
	}

	return nil
}
