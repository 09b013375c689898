// File: api/queue.go
// Package api defines the event channel contract between loops.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// EventQueue carries detected level transitions from the single detection
// goroutine to the single dispatch goroutine. Implementations are safe for
// exactly one producer and one consumer.
type EventQueue interface {
	// Push enqueues one event. It returns false only when the queue is at
	// capacity; unbounded implementations always return true. The producer
	// decides whether to retry.
	Push(Value) bool

	// Next blocks until an event is available or shutdown is observed and
	// honored. It returns ok=false when the consumer must exit; whether
	// events still buffered at that moment were delivered first is the
	// implementation's discipline.
	Next() (Value, bool)

	// Wake unblocks a consumer sitting in Next so it can observe shutdown.
	Wake()

	// Len reports the number of buffered events.
	Len() int
}
