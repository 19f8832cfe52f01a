// Package batching coalesces accepted publication requests into flushes so a
// burst of submissions becomes a handful of commits instead of one commit per
// document.
//
// BATCHING MODEL:
// A single background goroutine owns the buffer and the flush timer. Requests
// enter through a bounded admission queue and block for space when it fills,
// which puts backpressure on submitters instead of growing memory without
// bound. The buffer flushes when it reaches the size ceiling or when the
// flush interval elapses, whichever comes first, and the interval is measured
// from the previous flush rather than from the first buffered item.
//
// COMPLETION HANDLES:
// Every admitted item carries a single-use completion handle. A flush hands
// the whole buffer to the publisher synchronously and fans the one outcome to
// every handle, so each submitter learns how its own document's flush fared.
// Submitters that stop waiting do not retract their item: once admitted, a
// document rides the next flush regardless.
package batching

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/didpress/didpress/internal/did"
	"github.com/didpress/didpress/internal/logging"
	"github.com/didpress/didpress/internal/utils"
)

// SubmitTimeout bounds how long a single submission may spend inside the
// coordinator, covering both the wait for queue space and the wait for the
// flush outcome. A submission that exceeds it returns ErrSubmitTimeout while
// its item stays buffered for the next flush.
const SubmitTimeout = 30 * time.Second

var (
	// ErrSubmitTimeout reports a submission that waited out SubmitTimeout.
	// The document is still published by a later flush; only the caller
	// stopped waiting for the outcome.
	ErrSubmitTimeout = errors.New("publication submit timed out")

	// ErrStopped reports a submission against a coordinator that has shut
	// down and no longer drains its admission queue.
	ErrStopped = errors.New("publication coordinator stopped")
)

// Item is one accepted publication request riding the admission queue.
// The identifier travels with the file so the publisher can check repository
// ownership per batch without re-parsing anything. The completion handle is
// buffered so the flush goroutine never blocks on a submitter that already
// gave up.
type Item struct {
	TargetFile string         // Relative path of the saved document inside the repository
	DID        did.Identifier // Identifier the document belongs to
	RequestID  string         // Correlates coordinator logs with the admitting request
	EnqueuedAt time.Time      // When the submission was admitted

	done chan error
}

// Coordinator owns the publication buffer and flush timing. All buffer
// mutation happens on the single background goroutine started by Start;
// submitters only touch the admission queue and their own completion handle.
type Coordinator struct {
	queue     chan Item
	publisher Publisher

	maxBatchSize  int
	maxBatchDelay time.Duration
	submitTimeout time.Duration

	// Metrics for monitoring and observability
	batchesPublished   int64
	batchesFailed      int64
	documentsPublished int64

	// Lifecycle management
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewCoordinator creates a coordinator that flushes through publisher using
// the given batching parameters. Call Start before submitting.
func NewCoordinator(publisher Publisher, config *Config) *Coordinator {
	return &Coordinator{
		queue:         make(chan Item, config.QueueSize),
		publisher:     publisher,
		maxBatchSize:  config.MaxBatchSize,
		maxBatchDelay: config.MaxBatchDelay,
		submitTimeout: SubmitTimeout,
		stopCh:        make(chan struct{}),
	}
}

// Start launches the background flush goroutine.
func (c *Coordinator) Start() {
	c.wg.Add(1)
	go c.run()
	logging.Info("Coordinator: Started publication batching (size ceiling: %d, flush interval: %v)",
		c.maxBatchSize, c.maxBatchDelay)
}

// Stop shuts the coordinator down, draining the admission queue and flushing
// everything already accepted so no admitted document is lost. Submissions
// arriving after Stop fail with ErrStopped.
func (c *Coordinator) Stop() {
	close(c.stopCh)
	c.wg.Wait()
	logging.Info("Coordinator: Stopped publication batching")
}

// Submit hands one publication item to the coordinator and blocks until its
// flush completes, returning that flush's outcome. One deadline of
// SubmitTimeout spans both the wait for queue space and the wait for the
// outcome; when it fires the caller gets ErrSubmitTimeout but the item stays
// in the pipeline. Canceling ctx likewise abandons only the wait, never the
// admitted item.
func (c *Coordinator) Submit(ctx context.Context, item Item) error {
	select {
	case <-c.stopCh:
		return ErrStopped
	default:
	}

	item.EnqueuedAt = time.Now()
	item.done = make(chan error, 1)

	timer := time.NewTimer(c.submitTimeout)
	defer timer.Stop()

	select {
	case c.queue <- item:
		logging.Debug("Coordinator: Queued %s for publication (request: %s)", item.TargetFile, item.RequestID)
	case <-c.stopCh:
		return ErrStopped
	case <-timer.C:
		return ErrSubmitTimeout
	case <-ctx.Done():
		return ctx.Err()
	}

	// The item is admitted now. Shutdown drains the queue through a final
	// flush, so the outcome still arrives; only the timer and the caller's
	// context can abandon the wait.
	select {
	case err := <-item.done:
		return err
	case <-timer.C:
		logging.Warn("Coordinator: Submission for %s timed out waiting for flush, document stays queued (request: %s)",
			item.TargetFile, item.RequestID)
		return ErrSubmitTimeout
	case <-ctx.Done():
		logging.Warn("Coordinator: Submission for %s abandoned by caller, document stays queued (request: %s)",
			item.TargetFile, item.RequestID)
		return ctx.Err()
	}
}

// run is the single goroutine owning buffer and timer. The flush interval is
// measured from the previous flush: a flush forced by the size ceiling resets
// the ticker so the next timed flush starts its clock from that moment.
func (c *Coordinator) run() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.maxBatchDelay)
	defer ticker.Stop()

	var buffer []Item

	for {
		select {
		case <-c.stopCh:
			buffer = c.drain(buffer)
			c.flush(buffer, "shutdown")
			return

		case item := <-c.queue:
			buffer = append(buffer, item)
			if len(buffer) >= c.maxBatchSize {
				c.flush(buffer, "size ceiling reached")
				buffer = nil
				ticker.Reset(c.maxBatchDelay)
			}

		case <-ticker.C:
			if len(buffer) > 0 {
				c.flush(buffer, "flush interval elapsed")
				buffer = nil
			}
		}
	}
}

// drain empties the admission queue into the buffer during shutdown so items
// admitted but not yet collected still make the final flush.
func (c *Coordinator) drain(buffer []Item) []Item {
	for {
		select {
		case item := <-c.queue:
			buffer = append(buffer, item)
		default:
			return buffer
		}
	}
}

// flush hands the whole batch to the publisher synchronously and fans the
// single outcome to every completion handle. Handles are buffered, so fan-out
// never blocks on submitters that already timed out.
func (c *Coordinator) flush(batch []Item, reason string) {
	if len(batch) == 0 {
		return
	}

	flushID, err := utils.GenerateID()
	if err != nil {
		flushID = "unknown"
	}

	oldest := batch[0].EnqueuedAt
	for _, item := range batch {
		if item.EnqueuedAt.Before(oldest) {
			oldest = item.EnqueuedAt
		}
	}

	logging.Info("Coordinator: Flushing batch %s with %d documents (%s)", flushID, len(batch), reason)
	logging.Debug("Coordinator: Batch %s oldest item waited %v", flushID, time.Since(oldest))

	outcome := c.publisher.Publish(batch)
	if outcome != nil {
		atomic.AddInt64(&c.batchesFailed, 1)
		logging.Error("Coordinator: Batch %s failed: %v", flushID, outcome)
	} else {
		atomic.AddInt64(&c.batchesPublished, 1)
		atomic.AddInt64(&c.documentsPublished, int64(len(batch)))
		logging.Info("Coordinator: Batch %s published %d documents", flushID, len(batch))
	}

	for _, item := range batch {
		item.done <- outcome
	}
}

// GetMetrics returns current batching metrics for monitoring and observability.
// Provides real-time visibility into queue depth and flush history.
func (c *Coordinator) GetMetrics() map[string]int64 {
	return map[string]int64{
		"queue_size":          int64(len(c.queue)),
		"queue_cap":           int64(cap(c.queue)),
		"batches_published":   atomic.LoadInt64(&c.batchesPublished),
		"batches_failed":      atomic.LoadInt64(&c.batchesFailed),
		"documents_published": atomic.LoadInt64(&c.documentsPublished),
	}
}
