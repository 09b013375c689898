// File: internal/concurrency/ring.go
// Package concurrency implements lock-free ring buffers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RingBuffer backs the bounded event channel: a fixed circular buffer
// with atomic head/tail, padded to keep the producer and consumer
// indexes off one cache line. The detection loop enqueues level
// transitions, the dispatch loop dequeues them; no other goroutine may
// touch a given ring.
// Implements api.Ring for cross-package consistency.

package concurrency

import (
	"sync/atomic"

	"github.com/momentics/hioload-gpio/api"
)

// Ensure compile-time interface compliance.
var _ api.Ring[api.Value] = (*RingBuffer[api.Value])(nil)

// RingBuffer is a lock-free circular buffer, safe for exactly one
// producer and one consumer.
type RingBuffer[T any] struct {
	slots []T
	mask  uint64
	head  atomic.Uint64
	_     [64]byte // keep consumer and producer indexes apart
	tail  atomic.Uint64
	_     [64]byte
}

// NewRingBuffer allocates a ring holding at least capacity items,
// rounded up to a power of two (minimum 2) so index wrapping stays a
// mask instead of a division.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 2 {
		capacity = 2
	}
	size := uint64(2)
	for size < uint64(capacity) {
		size <<= 1
	}
	return &RingBuffer[T]{
		slots: make([]T, size),
		mask:  size - 1,
	}
}

// Enqueue adds an item; false means the ring is full right now.
func (r *RingBuffer[T]) Enqueue(item T) bool {
	head := r.head.Load()
	tail := r.tail.Load()
	if tail-head >= uint64(len(r.slots)) {
		return false
	}
	r.slots[tail&r.mask] = item
	r.tail.Store(tail + 1)
	return true
}

// Dequeue removes the oldest item; ok false means empty.
func (r *RingBuffer[T]) Dequeue() (T, bool) {
	head := r.head.Load()
	tail := r.tail.Load()
	if head >= tail {
		var zero T
		return zero, false
	}
	item := r.slots[head&r.mask]
	r.head.Store(head + 1)
	return item, true
}

// Len returns the number of buffered items.
func (r *RingBuffer[T]) Len() int {
	head := r.head.Load()
	tail := r.tail.Load()
	return int(tail - head)
}

// Cap returns the rounded fixed capacity.
func (r *RingBuffer[T]) Cap() int {
	return len(r.slots)
}
