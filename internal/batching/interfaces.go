// Package batching defines the publisher contract batches are flushed through
package batching

// Publisher pushes one flushed batch of saved documents to the hosting
// repository. The coordinator calls it synchronously from the flush goroutine
// with every item in the batch, and the returned error becomes the outcome of
// every submission in that flush.
//
// Keeping this as an interface lets the coordinator run against the real git
// publisher in the daemon and a stub in tests without a dependency cycle.
type Publisher interface {
	Publish(items []Item) error // Publish one batch, whole-batch outcome
}
