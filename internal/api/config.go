// Package api provides HTTP API server configuration for the didpress
// publication service.
//
// This file defines configuration structures and validation logic for the REST
// API server that fronts the publication pipeline. The configuration manages
// network binding parameters and the wiring point between the HTTP layer and
// the pipeline that resolves, fetches, and publishes did:web documents.
//
// The API configuration is the bridge between transport concerns and
// publication semantics: handlers stay free of fetch and git details, and the
// pipeline stays free of HTTP details. Validation ensures the server never
// starts half-wired, which would turn every publication request into a
// confusing runtime failure instead of one clear startup error.
//
// TODO: Add support for TLS/HTTPS configuration (cert/key files)
// TODO: Add authentication for the publication endpoint; health stays open
package api

import (
	"fmt"

	"github.com/didpress/didpress/internal/publish"
	"github.com/didpress/didpress/internal/validate"
)

const (
	// DefaultAPIPort is the default port for HTTP API server
	DefaultAPIPort = 8080
)

// Config holds all configuration parameters required for running the HTTP API
// server in front of the publication pipeline.
//
// The structure acts as a dependency injection container: the daemon builds
// the fetcher, coordinator, and processor, then hands the finished processor
// to the API layer here. Handlers only ever see the processor, which keeps
// the HTTP surface testable with stub pipelines.
type Config struct {
	BindAddr  string             // HTTP server bind address (e.g., "0.0.0.0")
	BindPort  int                // HTTP server bind port
	Processor *publish.Processor // Pipeline that turns identifiers into committed documents
}

// DefaultConfig creates a new Config instance with sensible default values
// for local development and testing environments.
//
// Defaults to loopback binding for safety; the daemon overrides the bind
// address from its own configuration when exposing the service. The processor
// has no useful default and must be set by the caller.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:  "127.0.0.1",
		BindPort:  DefaultAPIPort,
		Processor: nil, // Must be set by caller
	}
}

// Validate performs validation of all configuration parameters to ensure the
// API server can start successfully and serve publication requests.
//
// Checks network binding parameters and verifies the publication pipeline is
// wired. Early validation turns a half-configured server into one startup
// error instead of a stream of 500s under traffic.
func (c *Config) Validate() error {
	if err := validate.ValidateRequiredString(c.BindAddr, "bind address"); err != nil {
		return err
	}
	if err := validate.ValidatePortRange(c.BindPort); err != nil {
		return fmt.Errorf("bind port validation failed: %w", err)
	}
	if c.Processor == nil {
		return fmt.Errorf("document processor cannot be nil")
	}

	return nil
}
