// File: internal/concurrency/condqueue.go
// Package concurrency implements the unbounded event channel discipline.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// CondQueue pairs eapache's FIFO with a condition variable. The consumer
// checks the shutdown flag around every wait, before touching the buffer
// again, so shutdown interrupts a backlog instead of draining it.

package concurrency

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-gpio/api"
)

// Ensure compile-time interface compliance.
var _ api.EventQueue = (*CondQueue)(nil)

// CondQueue is the unbounded, abandon-on-exit event channel.
type CondQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	fifo   *queue.Queue
	cancel *Cancel
}

// NewCondQueue builds an unbounded channel.
func NewCondQueue(cancel *Cancel) *CondQueue {
	q := &CondQueue{
		fifo:   queue.New(),
		cancel: cancel,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues one event. It never refuses.
func (q *CondQueue) Push(v api.Value) bool {
	q.mu.Lock()
	q.fifo.Add(v)
	q.mu.Unlock()
	q.cond.Signal()
	return true
}

// Next blocks until an event arrives or shutdown is observed.
func (q *CondQueue) Next() (api.Value, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.fifo.Length() == 0 {
		if q.cancel.Canceled() {
			return api.Low, false
		}
		q.cond.Wait()
		if q.cancel.Canceled() {
			return api.Low, false
		}
	}
	return q.fifo.Remove().(api.Value), true
}

// Wake broadcasts under the lock so a consumer between its flag check and
// cond.Wait cannot miss the wakeup.
func (q *CondQueue) Wake() {
	q.mu.Lock()
	q.cond.Broadcast()
	q.mu.Unlock()
}

// Len reports buffered events.
func (q *CondQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.fifo.Length()
}
