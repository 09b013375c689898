// File: internal/concurrency/spinqueue.go
// Package concurrency implements the bounded event channel discipline.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SpinQueue adapts the SPSC ring to the EventQueue contract. The consumer
// spins pop first, shutdown check second, yield third: the flag is only
// honored on an empty ring, so every event already buffered is delivered
// before the consumer exits.

package concurrency

import (
	"runtime"

	"github.com/momentics/hioload-gpio/api"
)

// Ensure compile-time interface compliance.
var _ api.EventQueue = (*SpinQueue)(nil)

// SpinQueue is the bounded, drain-before-exit event channel.
type SpinQueue struct {
	ring   *RingBuffer[api.Value]
	cancel *Cancel
}

// NewSpinQueue builds a channel over a ring of at least capacity slots.
func NewSpinQueue(capacity int, cancel *Cancel) *SpinQueue {
	return &SpinQueue{
		ring:   NewRingBuffer[api.Value](capacity),
		cancel: cancel,
	}
}

// Push offers one event; false means the ring is full right now.
// The producer owns the retry policy.
func (q *SpinQueue) Push(v api.Value) bool {
	return q.ring.Enqueue(v)
}

// Next spins until an event arrives or shutdown is observed on an empty ring.
func (q *SpinQueue) Next() (api.Value, bool) {
	for {
		if v, ok := q.ring.Dequeue(); ok {
			return v, true
		}
		if q.cancel.Canceled() {
			return api.Low, false
		}
		runtime.Gosched()
	}
}

// Wake is a no-op: the consumer never sleeps.
func (q *SpinQueue) Wake() {}

// Len reports buffered events.
func (q *SpinQueue) Len() int { return q.ring.Len() }

// Cap reports the rounded ring capacity.
func (q *SpinQueue) Cap() int { return q.ring.Cap() }
