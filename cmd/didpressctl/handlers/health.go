package handlers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/didpress/didpress/cmd/didpressctl/client"
	"github.com/didpress/didpress/cmd/didpressctl/config"
	"github.com/didpress/didpress/cmd/didpressctl/utils"
	"github.com/didpress/didpress/internal/logging"
	"github.com/spf13/cobra"
)

// HandleHealth handles the health command for checking daemon liveness and
// version information. Confirms the HTTP API answers; it does not probe the
// upstream wallet agent or the publication repository.
func HandleHealth(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	logging.Info("Fetching health from API server: %s", config.Global.ServerAddr)

	// Create API client and get health
	apiClient := client.CreateAPIClient()
	health, err := apiClient.GetHealth()
	if err != nil {
		return err
	}

	// Display result
	if config.Global.Output == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(health); err != nil {
			logging.Error("Failed to encode JSON: %v", err)
			return fmt.Errorf("failed to encode response")
		}
	} else {
		fmt.Printf("Daemon is %s:\n", health.Status)
		fmt.Printf("  Version: %s\n", health.Version)
		fmt.Printf("  Uptime:  %s\n", health.Uptime)
	}

	logging.Success("Successfully retrieved daemon health from %s", config.Global.ServerAddr)
	return nil
}
