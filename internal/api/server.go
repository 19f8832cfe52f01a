// Package api provides the HTTP API server for the didpress publication
// service. The server fronts the publication pipeline with REST endpoints,
// allowing wallet backends and operator tooling to submit did:web identifiers
// for publication without linking against the pipeline directly.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/didpress/didpress/internal/api/handlers"
	"github.com/didpress/didpress/internal/logging"
	"github.com/didpress/didpress/internal/publish"
	"github.com/didpress/didpress/internal/version"
	"github.com/gin-gonic/gin"
)

// Represents the didpress API server
type Server struct {
	processor  *publish.Processor
	httpServer *http.Server
	listener   net.Listener
	bindAddr   string
	bindPort   int
}

// NewServer creates a new didpress API server instance
func NewServer(config *Config) *Server {
	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		processor: config.Processor,
		bindAddr:  config.BindAddr,
		bindPort:  config.BindPort,
	}
}

// NewServerWithListener creates a server that will serve on an already-bound
// listener instead of binding its own. Used by tests and by callers that
// claim the port ahead of startup to fail fast on conflicts.
func NewServerWithListener(config *Config, listener net.Listener) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid API config: %w", err)
	}

	server := NewServer(config)
	server.listener = listener
	return server, nil
}

// Start starts the didpress API server
func (s *Server) Start() error {
	logging.Info("Starting HTTP API server on %s:%d", s.bindAddr, s.bindPort)

	// Create Gin router
	router := gin.New()

	// Configure Gin logging only if not already configured by CLI tools
	if !logging.IsConfiguredByCLI() {
		// TODO: make Gin internal log level configurable via API config
		gin.DefaultWriter = logging.NewLevelWriter("INFO", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	// Add middleware
	router.Use(s.loggingMiddleware())
	router.Use(s.corsMiddleware())
	router.Use(gin.Recovery())

	// Setup routes
	s.setupRoutes(router)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.bindAddr, s.bindPort),
		Handler: router,
		// The write timeout must outlast the 30s submission ceiling in the
		// batching layer: publication handlers block until their batch
		// flushes or times out, and the outcome still has to reach the wire.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.listener != nil {
		// Serve on the listener the caller already bound
		go func() {
			if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
				logging.Error("HTTP server failed: %v", err)
			}
		}()

		logging.Success("HTTP API server started successfully")
		return nil
	}

	// Test binding first to catch errors immediately
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.httpServer.Addr, err)
	}
	listener.Close() // Close the test listener

	// Start server in goroutine now that we know binding works
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("HTTP API server started successfully")
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down HTTP API server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

var (
	startTime     = time.Now()               // Track server start time for uptime calculation
	daemonVersion = version.DidpressdVersion // Version reported by the health endpoint
)

// handleHealth delegates to handlers.HandleHealth
func (s *Server) handleHealth(c *gin.Context) {
	handler := s.getHandlerHealth()
	handler(c)
}

// getHandlerHealth is a health endpoint handler factory
func (s *Server) getHandlerHealth() gin.HandlerFunc {
	return handlers.HandleHealth(daemonVersion, startTime)
}

// handlePublishDID delegates to handlers.HandlePublish
func (s *Server) handlePublishDID(c *gin.Context) {
	handler := s.getHandlerPublishDID()
	handler(c)
}

// getHandlerPublishDID is a publication endpoint handler factory
func (s *Server) getHandlerPublishDID() gin.HandlerFunc {
	return handlers.HandlePublish(s.processor)
}
