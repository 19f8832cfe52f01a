// Package publish runs the full pipeline for one submitted identifier:
// parse, fetch the document from the upstream agent, save it into the working
// copy, verify the declared id, and hand the file to the batch coordinator.
//
// The processor owns pipeline order and policy, not mechanics. Fetching,
// saving, and publishing live in their own packages; what lives here is the
// decision of what happens when, which failures abort the pipeline, and which
// are merely reported. Identifier verification is advisory and never blocks
// publication. Dry-run mode stops after the save, leaving the working copy
// updated but the repository untouched.
package publish

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/didpress/didpress/internal/batching"
	"github.com/didpress/didpress/internal/did"
	"github.com/didpress/didpress/internal/document"
	"github.com/didpress/didpress/internal/logging"
)

// Fetcher retrieves the raw document for an identifier from the upstream
// agent.
type Fetcher interface {
	Fetch(ctx context.Context, id did.Identifier) ([]byte, error)
}

// Submitter admits one saved document into the publication batch and blocks
// for the flush outcome.
type Submitter interface {
	Submit(ctx context.Context, item batching.Item) error
}

// Processor wires the pipeline stages together for the API layer. One
// processor serves all requests; the stages it delegates to are safe for
// concurrent use.
type Processor struct {
	fetcher   Fetcher
	submitter Submitter
	repoDir   string // Absolute path of the working copy documents are saved into
	dryRun    bool
}

// NewProcessor creates a processor saving documents under repoDir. With
// dryRun set the pipeline fetches and saves but never submits for
// publication.
func NewProcessor(fetcher Fetcher, submitter Submitter, repoDir string, dryRun bool) *Processor {
	return &Processor{
		fetcher:   fetcher,
		submitter: submitter,
		repoDir:   repoDir,
		dryRun:    dryRun,
	}
}

// Process runs the pipeline for one identifier and blocks until its batch
// flushes (or dry-run stops it after the save). requestID tags the
// coordinator logs so a flush can be traced back to the requests it served.
func (p *Processor) Process(ctx context.Context, didString string, requestID string) error {
	id, err := did.Parse(didString)
	if err != nil {
		return err
	}

	logging.Info("Processor: Publishing %s (request: %s)", id, requestID)

	data, err := p.fetcher.Fetch(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching document for %s: %w", id, err)
	}

	targetFile := id.TargetFile(p.repoDir)
	path := filepath.Join(p.repoDir, targetFile)

	if err := document.Save(data, path); err != nil {
		return fmt.Errorf("saving document for %s: %w", id, err)
	}
	logging.Debug("Processor: Saved document to %s", targetFile)

	// The upstream agent owns the document body; a mismatched id is worth a
	// warning, never a rejection.
	if err := document.VerifyID(path, id.ExpectedID()); err != nil {
		logging.Warn("Processor: %v", err)
	}

	if p.dryRun {
		logging.Info("Processor: Dry run, skipping publication of %s", targetFile)
		return nil
	}

	return p.submitter.Submit(ctx, batching.Item{
		TargetFile: targetFile,
		DID:        id,
		RequestID:  requestID,
	})
}
