// Package config loads and validates the daemon configuration from the
// environment, with an optional .env file for development setups. This
// centralizes configuration management and ensures every component starts
// from the same validated settings.
package config

import "time"

const (
	// DefaultBindAddr is the default bind address for the HTTP API
	// Using 0.0.0.0 allows binding to all available network interfaces
	DefaultBindAddr = "0.0.0.0"

	// DefaultAPIPort is the default port for the HTTP API
	DefaultAPIPort = 8080

	// DefaultLogLevel is the default log level for all components
	// INFO provides good balance of visibility without verbose debug output
	DefaultLogLevel = "INFO"

	// DefaultServerURL is the default upstream agent serving DID documents
	DefaultServerURL = "http://localhost:3332"

	// DefaultRepoDir is the default working copy location, the directory
	// the daemon is started from
	DefaultRepoDir = "."

	// DefaultFetchTimeout bounds one document fetch from the upstream agent
	DefaultFetchTimeout = 15 * time.Second
)
