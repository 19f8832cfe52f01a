// Package handlers provides HTTP request handlers for the didpress API server.
//
// This file implements the publication endpoint that turns did:web identifiers
// into committed documents in the GitHub Pages working copy. Requests block
// while the batching layer groups concurrent submissions into shared commits,
// so a single response covers the whole pipeline: resolve, fetch, save, flush.
//
// PUBLICATION ENDPOINT:
//   - POST /api/v1/dids: Resolve, fetch, and publish one did:web document
//
// STATUS MAPPING:
// Pipeline failures map onto transport semantics. Identifier problems are the
// client's fault (400). An upstream agent that cannot be reached or answers
// with a non-success status is a bad gateway (502). A submission that outlives
// the admission ceiling is a gateway timeout (504), and a draining coordinator
// answers service unavailable (503). Flush-level failures surface as plain
// 500s: a flush outcome is shared by every document in the batch and cannot
// be pinned on the request that happened to receive it.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/didpress/didpress/internal/batching"
	"github.com/didpress/didpress/internal/did"
	"github.com/didpress/didpress/internal/document"
	"github.com/didpress/didpress/internal/logging"
	"github.com/didpress/didpress/internal/utils"
	"github.com/gin-gonic/gin"
)

// DocumentProcessor runs the publication pipeline for a single identifier.
// Enables publication handlers to hand identifiers to the pipeline without
// knowing how fetching, saving, or batching are wired together.
//
// Note on interface placement:
// This package defines its own DocumentProcessor interface instead of
// importing the pipeline package directly. The api package imports handlers
// to wire routes, so depending on concrete pipeline types from here would
// couple every handler test to the full fetch and batching stack. The
// concrete processor built by the daemon satisfies this interface without
// adapters.
type DocumentProcessor interface {
	Process(ctx context.Context, didString string, requestID string) error
}

// PublishRequest represents the HTTP request payload for publishing a did:web
// document. Carries the identifier to resolve; everything else about the
// publication (target file, commit, push) is derived from it server-side.
type PublishRequest struct {
	DID string `json:"did" binding:"required"` // did:web identifier to publish
}

// PublishResponse represents the HTTP response for publication requests.
// Reports whether the document reached the repository together with a request
// ID that correlates the response with coordinator and publisher log lines.
type PublishResponse struct {
	Success   bool   `json:"success"`           // Whether the document reached the repository
	Message   string `json:"message,omitempty"` // Human-readable outcome message
	RequestID string `json:"request_id"`        // Correlation ID for log lookup
	Error     string `json:"error,omitempty"`   // Failure description when Success is false
}

// HandlePublish handles HTTP requests for publishing did:web documents.
// Validates the request payload, runs the publication pipeline, and blocks
// until the document's batch has flushed or the submission deadline passes.
//
// POST /api/v1/dids
//
// The primary interface for wallet backends and operator tooling to request
// publication. Success means the document is committed and pushed (or saved,
// in dry-run mode), not merely accepted for processing.
func HandlePublish(processor DocumentProcessor) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse request body
		var req PublishRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logging.Warn("Publication: Invalid request body: %v", err)
			c.JSON(http.StatusBadRequest, PublishResponse{
				Success: false,
				Error:   "Invalid request body: 'did' is required",
			})
			return
		}

		// Generate request ID upfront so every log line along the pipeline
		// can be correlated back to this submission
		requestID, err := utils.GenerateID()
		if err != nil {
			logging.Warn("Publication: Failed to generate request ID: %v", err)
			requestID = "unknown"
		}

		logging.Info("Publication request: did=%s request=%s", req.DID, requestID)

		if err := processor.Process(c.Request.Context(), req.DID, requestID); err != nil {
			status := publishErrorStatus(err)
			logging.Warn("Publication: %s failed: %v", req.DID, err)
			c.JSON(status, PublishResponse{
				Success:   false,
				RequestID: requestID,
				Error:     err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, PublishResponse{
			Success:   true,
			Message:   "DID document published",
			RequestID: requestID,
		})
	}
}

// publishErrorStatus maps pipeline errors onto HTTP status codes. Transport
// failures from the fetch stage arrive as *url.Error from net/http, which
// keeps the classification type-based instead of matching error strings.
func publishErrorStatus(err error) int {
	var statusErr *document.StatusError
	var urlErr *url.Error

	switch {
	case errors.Is(err, did.ErrMalformedDID):
		return http.StatusBadRequest
	case errors.As(err, &statusErr):
		return http.StatusBadGateway
	case errors.As(err, &urlErr):
		return http.StatusBadGateway
	case errors.Is(err, batching.ErrSubmitTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, batching.ErrStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
