// Package main provides the entry point for the didpress CLI tool (didpressctl).
//
// This package implements the main executable for the publication CLI that
// enables operators to interact with a running didpressd daemon. The CLI
// provides commands for publishing did:web documents and checking daemon
// health over the daemon's REST API.
//
// CLI ARCHITECTURE:
// The main package orchestrates the complete CLI system including:
//   - Command Structure: publish and health commands under a single root
//   - Handler Integration: Command execution with API client communication
//   - Flag Management: Global configuration options (server, timeout, output)
//   - Configuration Binding: CLI state management and validation pipeline
//
// INITIALIZATION FLOW:
// 1. Command structure setup
// 2. Flag configuration for global options
// 3. Handler assignment linking commands to API operations
// 4. Configuration validation and CLI state management
// 5. Command execution with proper error handling and exit codes
package main

import (
	"os"

	"github.com/didpress/didpress/cmd/didpressctl/commands"
	"github.com/didpress/didpress/cmd/didpressctl/config"
	"github.com/didpress/didpress/cmd/didpressctl/handlers"
)

func init() {
	// Get root command from commands package
	rootCmd := commands.RootCmd

	// Set version and validation
	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	// Setup all command structures
	commands.SetupCommands()

	// Setup global flags
	commands.SetupGlobalFlags(rootCmd, &config.Global.ServerAddr, &config.Global.LogLevel,
		&config.Global.Timeout, &config.Global.Output, config.DefaultServerAddr)

	// Setup command handlers
	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	publishCmd, healthCmd := commands.GetCommands()

	publishCmd.RunE = handlers.HandlePublish
	healthCmd.RunE = handlers.HandleHealth
}

// main is the main entry point
func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
