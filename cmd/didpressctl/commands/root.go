// Package commands provides the command tree implementation for didpressctl.
//
// This package defines the command structure for the didpress CLI tool. The
// CLI drives a didpress publication daemon over its REST API, so operators
// can publish did:web documents and check daemon health without touching the
// working copy or the wallet agent directly.
//
// COMMAND STRUCTURE:
//   - publish: Submit one or more did:web identifiers for publication
//   - health: Show daemon health and version information
//
// All commands follow consistent patterns with standardized flag handling,
// error messages, and output formatting.
package commands

import (
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "didpressctl",
	Short: "CLI tool for publishing did:web documents through a didpress daemon",
	Long: `didpress CLI (didpressctl) is a command-line tool for driving a didpress
publication daemon.

It submits did:web identifiers for publication and inspects daemon health,
talking to the daemon's REST API so operators never touch the working copy
directly.`,
	SilenceUsage: true,
	Example: `  # Publish a document
  didpressctl publish did:web:acme.github.io:ssi-dids:alice

  # Publish several documents in one call
  didpressctl publish did:web:acme.github.io:ssi-dids:alice did:web:acme.github.io:ssi-dids:bob

  # Check daemon health
  didpressctl health

  # Talk to a remote daemon
  didpressctl --server=192.168.1.100:8080 health

  # Output in JSON format
  didpressctl --output=json health`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	// Add all top-level commands to root
	RootCmd.AddCommand(publishCmd)
	RootCmd.AddCommand(healthCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, serverAddrPtr *string, logLevelPtr *string,
	timeoutPtr *int, outputPtr *string, defaultServerAddr string) {
	rootCmd.PersistentFlags().StringVar(serverAddrPtr, "server", defaultServerAddr,
		"didpressd API server address")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", "ERROR",
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeoutPtr, "timeout", 40,
		"Request timeout in seconds (publications block until their batch flushes)")
	rootCmd.PersistentFlags().StringVarP(outputPtr, "output", "o", "table",
		"Output format: table, json")
}

// GetCommands returns the command structures for handler assignment
func GetCommands() (*cobra.Command, *cobra.Command) {
	return publishCmd, healthCmd
}
