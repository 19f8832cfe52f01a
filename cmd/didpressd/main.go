// Package main implements the didpress daemon (didpressd).
// didpress publishes did:web documents to GitHub Pages repositories: it
// resolves identifiers, fetches the matching documents from the local wallet
// agent, and batches concurrent publications into shared commits pushed to
// the repository that serves them.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/didpress/didpress/internal/api"
	"github.com/didpress/didpress/internal/batching"
	"github.com/didpress/didpress/internal/config"
	"github.com/didpress/didpress/internal/document"
	"github.com/didpress/didpress/internal/git"
	"github.com/didpress/didpress/internal/logging"
	"github.com/didpress/didpress/internal/netutil"
	"github.com/didpress/didpress/internal/publish"
	"github.com/didpress/didpress/internal/version"
	"github.com/spf13/cobra"
)

// Command-line overrides layered on top of the environment configuration
var flags struct {
	EnvFile  string // Path to an explicit .env file
	Port     int    // HTTP API port override
	LogLevel string // Log level override: DEBUG, INFO, WARN, ERROR
	DryRun   bool   // Skip git operations after saving documents
}

// Effective daemon configuration, resolved in PreRunE
var cfg *config.Config

// Root command
var rootCmd = &cobra.Command{
	Use:   "didpressd",
	Short: "didpress publication daemon for did:web documents on GitHub Pages",
	Long: `didpress daemon (didpressd) publishes did:web documents to GitHub Pages.

It resolves did:web identifiers, fetches the matching documents from the
local wallet agent, and batches concurrent publications into shared commits
pushed to the repository that serves them.`,
	Version: version.DidpressdVersion,
	Example: `  # Publish into the current working copy against a local agent
  didpressd

  # Serve on a specific port with an explicit env file
  didpressd --env-file=/etc/didpress/publish.env --port=9000

  # Exercise the pipeline without committing anything
  didpressd --dry-run --log-level=DEBUG`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Display logo first, before any validation or logging
		displayLogo(version.DidpressdVersion)
	},
	PreRunE: setupConfig,
	RunE:    runDaemon,
}

// displayLogo prints the didpress wordmark with version information
func displayLogo(version string) {
	fmt.Println()
	fmt.Println(` ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░
 ░█▀▄░▀█▀░█▀▄░█▀█░█▀▄░█▀▀░█▀▀░█▀▀░
 ░█░█░░█░░█░█░█▀▀░█▀▄░█▀▀░▀▀█░▀▀█░
 ░▀▀░░▀▀▀░▀▀░░▀░░░▀░▀░▀▀▀░▀▀▀░▀▀▀░
 ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░`)
	fmt.Printf("\n didpress v%s - did:web Publication Daemon\n", version)
	fmt.Println(" Batched publishing of DID documents to GitHub Pages")
	fmt.Println()
}

func init() {
	// Configuration source flags
	rootCmd.Flags().StringVar(&flags.EnvFile, "env-file", "",
		"Path to an explicit .env file (default: ./.env when present)")

	// Operational flags; each one overrides its environment counterpart
	rootCmd.Flags().IntVar(&flags.Port, "port", config.DefaultAPIPort,
		"HTTP API port (overrides PORT)")
	rootCmd.Flags().StringVar(&flags.LogLevel, "log-level", config.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR (overrides LOG_LEVEL)")
	rootCmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Fetch and save documents but skip all git operations (overrides DRY_RUN)")
}

// Resolves the effective configuration before running: environment first,
// explicit command-line overrides on top
func setupConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(flags.EnvFile)
	if err != nil {
		return err
	}

	// Flags only win when the operator actually set them, so an untouched
	// flag never clobbers an environment value with its default
	if cmd.Flags().Changed("port") {
		loaded.BindPort = flags.Port
	}
	if cmd.Flags().Changed("log-level") {
		loaded.LogLevel = strings.ToUpper(flags.LogLevel)
	}
	if cmd.Flags().Changed("dry-run") {
		loaded.DryRun = flags.DryRun
	}

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.SetLevel(loaded.LogLevel)
	cfg = loaded
	return nil
}

// Runs the daemon with graceful shutdown handling
func runDaemon(cmd *cobra.Command, args []string) error {
	logging.Info("Starting didpress daemon v%s", version.DidpressdVersion)

	// Open the working copy first: without a repository there is nothing to
	// publish into, and failing here beats failing on the first request
	repo, err := git.Open(cfg.RepoDir, cfg.Git)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	// Provision the remote when the environment names one; an existing
	// remote with a different URL is left alone
	if cfg.RemoteURL != "" {
		if err := repo.EnsureRemote(cfg.RemoteURL); err != nil {
			return fmt.Errorf("failed to provision remote: %w", err)
		}
	}

	logging.Info("Repository: %s (remote %q, branch %q)", repo.Dir(), cfg.Git.Remote, cfg.Git.Branch)
	logging.Info("Upstream agent: %s", cfg.ServerURL)
	logging.Info("Batching: up to %d documents per commit, %v flush interval",
		cfg.Batching.MaxBatchSize, cfg.Batching.MaxBatchDelay)
	if cfg.DryRun {
		logging.Warn("Dry run enabled: documents are saved but never committed")
	}

	// Assemble the pipeline back to front: publisher, coordinator, fetcher
	coordinator := batching.NewCoordinator(repo, cfg.Batching)
	fetcher := document.NewFetcher(cfg.ServerURL, cfg.FetchTimeout,
		fmt.Sprintf("didpressd/%s", version.DidpressdVersion))
	processor := publish.NewProcessor(fetcher, coordinator, repo.Dir(), cfg.DryRun)

	apiConfig := &api.Config{
		BindAddr:  cfg.BindAddr,
		BindPort:  cfg.BindPort,
		Processor: processor,
	}

	// Claim the port before anything starts so a conflict surfaces as one
	// clear startup error instead of a background serve failure
	addr := fmt.Sprintf("%s:%d", cfg.BindAddr, cfg.BindPort)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		if netutil.IsAddressInUseError(err) {
			return fmt.Errorf("port %d on %s is already in use; is another didpressd running?",
				cfg.BindPort, cfg.BindAddr)
		}
		return fmt.Errorf("failed to bind API address %s: %w", addr, err)
	}

	server, err := api.NewServerWithListener(apiConfig, listener)
	if err != nil {
		listener.Close()
		return err
	}

	// Coordinator before API: a request must never find a dead queue
	coordinator.Start()

	if err := server.Start(); err != nil {
		coordinator.Stop()
		listener.Close()
		return fmt.Errorf("failed to start API server: %w", err)
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logging.Success("didpress daemon started successfully")
	logging.Info("Daemon running... Press Ctrl+C to shutdown")

	sig := <-sigCh
	logging.Info("Received signal: %v", sig)

	// Graceful shutdown
	logging.Info("Initiating graceful shutdown...")

	// API first so no new submissions arrive, coordinator last so the final
	// flush still covers everything already admitted
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("Error shutting down API server: %v", err)
	}

	coordinator.Stop()

	metrics := coordinator.GetMetrics()
	logging.Info("Coordinator: published %d batches (%d documents, %d failed flushes)",
		metrics["batches_published"], metrics["documents_published"], metrics["batches_failed"])

	logging.Success("didpress daemon shutdown completed")
	return nil
}

// Main entry point
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
