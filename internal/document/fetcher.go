// Package document retrieves DID documents from the upstream agent and writes
// them into the working copy.
//
// The upstream agent serves documents by URL path but routes requests by
// virtual host: the same listener answers for every hosted did:web host, and
// the Host header decides which one is meant. The fetcher therefore forces the
// literal Host header to the identifier's host on every request while dialing
// whatever base URL the agent actually listens on.
//
// Fetched payloads are pretty-printed before hitting disk so the published
// repository stays reviewable; payloads that do not parse as JSON are written
// raw with a warning. After saving, the declared document id can be checked
// against the canonical reconstruction from the identifier. A mismatch is
// reported but never fatal: the upstream agent owns that field.
package document

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/didpress/didpress/internal/did"
	"github.com/didpress/didpress/internal/logging"
	"github.com/didpress/didpress/internal/netutil"
	"github.com/go-resty/resty/v2"
)

// StatusError reports a fetch that reached the upstream agent but came back
// with a non-success status. Carries the code for callers that map outcomes
// onto their own status handling.
type StatusError struct {
	Code   int
	Status string
}

// Error returns the upstream status in a log-friendly form.
func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned HTTP %d: %s", e.Code, e.Status)
}

// Fetcher retrieves DID documents from the upstream agent. Safe for
// concurrent use; the underlying resty client pools connections.
type Fetcher struct {
	client  *resty.Client
	baseURL string
}

// NewFetcher creates a fetcher for the agent at baseURL. There is no retry
// configured: fetch failures surface to the submitting caller, and
// re-submission is the caller's decision.
func NewFetcher(baseURL string, timeout time.Duration, userAgent string) *Fetcher {
	client := resty.New()

	client.
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	// net/http takes the wire Host from Request.Host, not the header map.
	// Copy the per-request Host header there right before the send.
	client.SetPreRequestHook(func(c *resty.Client, req *http.Request) error {
		if host := req.Header.Get("Host"); host != "" {
			req.Host = host
		}
		return nil
	})

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Fetching %s %s (host override: %s)",
			req.Method, req.URL, req.Header.Get("Host"))
		return nil
	})

	return &Fetcher{
		client:  client,
		baseURL: baseURL,
	}
}

// BaseURL returns the configured upstream base URL.
func (f *Fetcher) BaseURL() string {
	return f.baseURL
}

// Fetch retrieves the document for id from the upstream agent with the
// literal Host header forced to the identifier's host. Transport failures are
// returned wrapped; a reachable upstream answering anything but 200 yields a
// *StatusError.
func (f *Fetcher) Fetch(ctx context.Context, id did.Identifier) ([]byte, error) {
	url := id.DocumentURL(f.baseURL)

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Host", id.Host).
		Get(url)
	if err != nil {
		if netutil.IsConnectionRefusedError(err) {
			logging.Warn("Upstream agent at %s refused the connection; is it running?", f.baseURL)
		}
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode(), Status: resp.Status()}
	}

	return resp.Body(), nil
}
