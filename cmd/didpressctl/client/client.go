// Package client provides API client functionality for the didpressctl CLI.
//
// This package implements the HTTP client layer for communicating with the
// didpressd REST API. It handles request/response serialization, error
// handling, retry logic, and structured logging for reliable publication
// operations.
//
// API CLIENT ARCHITECTURE:
// The DIDPressAPIClient wraps the Resty HTTP client with didpress-specific
// functionality:
//   - Connection Management: Timeout configuration and retry policies
//   - Request/Response Handling: JSON serialization and structured error parsing
//   - Identification: User-Agent headers for compatibility tracking
//   - Fault Tolerance: Automatic retries on connection failures
//
// Retries fire only on transport errors, never on HTTP error statuses. This
// is safe for the publication endpoint because resubmitting an unchanged
// document produces no new commit on the daemon side.
//
// SUPPORTED OPERATIONS:
//   - Publication: Submit did:web identifiers and wait for the batch flush
//   - Health: Daemon liveness, version, and uptime
package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/didpress/didpress/cmd/didpressctl/config"
	"github.com/didpress/didpress/cmd/didpressctl/utils"
	"github.com/didpress/didpress/internal/logging"
	"github.com/go-resty/resty/v2"
)

// PublishResult mirrors the daemon's publication response. Reports whether
// the document reached the repository together with the request ID that
// correlates this submission with daemon log lines.
type PublishResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id"`
	Error     string `json:"error,omitempty"`
}

// HealthStatus mirrors the daemon's health response including version and
// uptime information for operational visibility.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// DIDPressAPIClient wraps the Resty HTTP client with didpress-specific
// functionality for reliable daemon API communication. Provides a configured
// client with retry logic, structured logging, and timeout handling.
type DIDPressAPIClient struct {
	client  *resty.Client
	baseURL string
}

// NewDIDPressAPIClient creates a new API client with Resty configuration for
// reliable daemon communication. Configures timeout handling, retry logic,
// structured logging integration, and proper headers.
//
// The timeout has to be generous: a publication request blocks on the daemon
// side until its batch flushes, which can take the better part of the 30s
// submission ceiling plus the push itself.
func NewDIDPressAPIClient(serverAddr string, timeout int) *DIDPressAPIClient {
	client := resty.New()

	baseURL := fmt.Sprintf("http://%s/api/v1", serverAddr)

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(utils.RestryLogger{})

	// Configure client with timeouts, headers, and retry logic
	client.
		SetTimeout(time.Duration(timeout)*time.Second).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("didpressctl/%s", config.Version))

	// Add retry mechanism with custom retry conditions
	client.
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Only retry on connection errors, not HTTP errors
			return err != nil
		})

	// Custom request logging using structured logging
	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making API request: %s %s", req.Method, req.URL)
		return nil
	})

	// Custom response logging using structured logging
	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("API response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	// Custom error logging using structured logging
	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &DIDPressAPIClient{
		client:  client,
		baseURL: baseURL,
	}
}

// PublishDID submits a did:web identifier for publication and blocks until
// the daemon has flushed the batch carrying it. Success means the document
// is committed and pushed, not merely accepted.
//
// Maps the daemon's status codes onto operator-facing error messages:
// rejected identifiers, unreachable wallet agents, flush timeouts, and
// daemon shutdown each get a distinct diagnosis.
func (api *DIDPressAPIClient) PublishDID(didString string) (*PublishResult, error) {
	var response PublishResult

	resp, err := api.client.R().
		SetBody(map[string]any{"did": didString}).
		SetResult(&response).
		Post("/dids")

	if err != nil {
		return nil, fmt.Errorf("failed to connect to API server at %s: %w", api.baseURL, err)
	}

	if resp.StatusCode() == 400 {
		return nil, fmt.Errorf("identifier rejected: %s", errorMessage(resp))
	}

	if resp.StatusCode() == 502 {
		return nil, fmt.Errorf("upstream agent failure: %s", errorMessage(resp))
	}

	if resp.StatusCode() == 503 {
		return nil, fmt.Errorf("daemon is shutting down: %s", errorMessage(resp))
	}

	if resp.StatusCode() == 504 {
		return nil, fmt.Errorf("timed out waiting for the batch flush: %s", errorMessage(resp))
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	return &response, nil
}

// GetHealth fetches daemon health, version, and uptime information from the
// API. Confirms the HTTP layer is reachable; it does not probe the upstream
// wallet agent or the publication repository.
func (api *DIDPressAPIClient) GetHealth() (*HealthStatus, error) {
	var health HealthStatus

	resp, err := api.client.R().
		SetResult(&health).
		Get("/health")

	if err != nil {
		return nil, fmt.Errorf("failed to connect to API server at %s: %w", api.baseURL, err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	return &health, nil
}

// errorMessage extracts the daemon's error field from a non-200 response
// body, falling back to the raw body when it is not the expected JSON shape.
func errorMessage(resp *resty.Response) string {
	var body PublishResult
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		return body.Error
	}
	return resp.String()
}

// CreateAPIClient creates a new didpress API client using current global CLI
// configuration including server address and timeout settings. Provides
// convenient client instantiation for CLI commands without manual
// configuration management.
func CreateAPIClient() *DIDPressAPIClient {
	return NewDIDPressAPIClient(config.Global.ServerAddr, config.Global.Timeout)
}
