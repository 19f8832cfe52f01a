package batching

import (
	"fmt"
	"time"
)

// Config holds the batching parameters that control flush cadence and
// admission capacity. The size ceiling and flush interval bound how long a
// document can sit buffered; the queue size bounds how many submissions can
// be admitted ahead of the buffer before backpressure kicks in.
type Config struct {
	// Flush triggers
	MaxBatchSize  int           `json:"max_batch_size" mapstructure:"max_batch_size"`   // Flush when the buffer reaches this many documents
	MaxBatchDelay time.Duration `json:"max_batch_delay" mapstructure:"max_batch_delay"` // Flush when this much time passed since the previous flush

	// Admission queue capacity
	QueueSize int `json:"queue_size" mapstructure:"queue_size"` // Submissions admitted ahead of the buffer before Submit blocks
}

// DefaultConfig returns batching parameters suited to interactive use: small
// batches with a short interval so a lone submission never waits long, and
// enough queue headroom to absorb a burst while a flush is pushing.
func DefaultConfig() *Config {
	return &Config{
		MaxBatchSize:  10,
		MaxBatchDelay: 5 * time.Second,
		QueueSize:     100,
	}
}

// Validate checks that the batching parameters describe a coordinator that
// can actually make progress and stays within sane bounds.
func (c *Config) Validate() error {
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("max batch size must be positive, got %d", c.MaxBatchSize)
	}
	if c.MaxBatchDelay <= 0 {
		return fmt.Errorf("max batch delay must be positive, got %v", c.MaxBatchDelay)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("queue size must be positive, got %d", c.QueueSize)
	}

	// Sanity checks for reasonable values
	if c.MaxBatchSize > 1000 {
		return fmt.Errorf("max batch size too large (max 1000), got %d", c.MaxBatchSize)
	}
	if c.MaxBatchDelay > 10*time.Minute {
		return fmt.Errorf("max batch delay too large (max 10m), got %v", c.MaxBatchDelay)
	}
	if c.QueueSize > 100000 {
		return fmt.Errorf("queue size too large (max 100000), got %d", c.QueueSize)
	}

	// A flush interval shorter than the submit deadline keeps admitted
	// documents from timing out their callers on an idle buffer.
	if c.MaxBatchDelay >= SubmitTimeout {
		return fmt.Errorf("max batch delay %v must be below the submit timeout %v", c.MaxBatchDelay, SubmitTimeout)
	}

	return nil
}
