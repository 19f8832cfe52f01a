package commands

import (
	"github.com/spf13/cobra"
)

// Command for checking daemon health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show daemon health and version information",
	Long: `Show health, version, and uptime information for the didpress daemon.

This confirms the HTTP API is reachable. It does not probe the upstream
wallet agent or the publication repository.`,
	Example: `  # Check daemon health
  didpressctl health

  # Check health of a remote daemon
  didpressctl --server=192.168.1.100:8080 health

  # Output in JSON format
  didpressctl -o json health`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}
