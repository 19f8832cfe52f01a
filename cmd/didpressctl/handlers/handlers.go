// Package handlers provides command handler functions for didpressctl.
//
// This package contains all the command execution logic for didpressctl
// commands, organized by operation for maintainability and clean separation
// of concerns.
//
// The package is organized as follows:
// - publish.go: Document publication through the daemon (publish)
// - health.go: Daemon health and version inspection (health)
//
// All handlers follow consistent patterns:
// - cobra.Command RunE function signature for CLI integration
// - Standardized error handling and logging using the logging package
// - Table and JSON output selected by the global --output flag
// - Clean separation between API communication and presentation logic
package handlers
