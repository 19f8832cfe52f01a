// Package config provides configuration management for the didpressctl CLI.
package config

import "github.com/didpress/didpress/internal/version"

const (
	DefaultServerAddr = "127.0.0.1:8080" // Default didpressd API server address
)

// Version returns the current didpressctl CLI version from the centralized version package
var Version = version.DidpressctlVersion

// Global holds the global CLI configuration
var Global struct {
	ServerAddr string // Address of didpressd API server to connect to
	LogLevel   string // Log level for CLI operations
	Timeout    int    // Request timeout in seconds
	Output     string // Output format: table, json
}
