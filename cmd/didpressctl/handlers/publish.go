package handlers

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/didpress/didpress/cmd/didpressctl/client"
	"github.com/didpress/didpress/cmd/didpressctl/config"
	"github.com/didpress/didpress/cmd/didpressctl/utils"
	"github.com/didpress/didpress/internal/logging"
	"github.com/spf13/cobra"
)

// publishOutcome captures the per-identifier result of a publication run for
// both table and JSON rendering.
type publishOutcome struct {
	DID       string `json:"did"`
	Success   bool   `json:"success"`
	RequestID string `json:"request_id,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandlePublish handles the publish command for submitting did:web documents
// through the daemon. Publishes all identifiers concurrently so a single CLI
// invocation lands in as few batches as possible: the daemon admits
// simultaneous submissions into a shared commit, while sequential requests
// would each flush alone.
//
// Each request blocks until its batch has been committed and pushed, so a
// success line means the document is live in the repository, not merely
// accepted for processing.
func HandlePublish(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	logging.Info("Publishing %d documents through API server: %s",
		len(args), config.Global.ServerAddr)

	// Create API client shared by all submissions
	apiClient := client.CreateAPIClient()

	// Indexed results keep output in argument order regardless of which
	// request finishes first
	outcomes := make([]publishOutcome, len(args))

	var wg sync.WaitGroup
	for i, didString := range args {
		wg.Add(1)
		go func(i int, didString string) {
			defer wg.Done()

			result, err := apiClient.PublishDID(didString)
			if err != nil {
				outcomes[i] = publishOutcome{DID: didString, Error: err.Error()}
				return
			}

			outcomes[i] = publishOutcome{
				DID:       didString,
				Success:   true,
				RequestID: result.RequestID,
				Message:   result.Message,
			}
		}(i, didString)
	}
	wg.Wait()

	failures := 0
	for _, outcome := range outcomes {
		if !outcome.Success {
			failures++
		}
	}

	// Display results
	if config.Global.Output == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(outcomes); err != nil {
			logging.Error("Failed to encode JSON: %v", err)
			return fmt.Errorf("failed to encode response")
		}
	} else {
		for _, outcome := range outcomes {
			if outcome.Success {
				fmt.Printf("published  %s (request %s)\n", outcome.DID, outcome.RequestID)
			} else {
				fmt.Printf("FAILED     %s: %s\n", outcome.DID, outcome.Error)
			}
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d publications failed", failures, len(args))
	}

	logging.Success("Successfully published %d documents", len(args))
	return nil
}
