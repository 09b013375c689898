// Package api
// Author: momentics <momentics@gmail.com>
//
// Lock-free ring buffer contract for cross-goroutine producer/consumer.

package api

// Ring is a bounded single-producer single-consumer buffer.
type Ring[T any] interface {
	// Enqueue adds an item, returns false if full.
	Enqueue(item T) bool
	// Dequeue removes the oldest item, returns false if empty.
	Dequeue() (T, bool)
	// Len returns the current number of items.
	Len() int
	// Cap returns the fixed capacity.
	Cap() int
}
