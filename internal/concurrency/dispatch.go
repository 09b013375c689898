// File: internal/concurrency/dispatch.go
// Package concurrency implements the callback dispatch loop.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Dispatcher drains the event channel and invokes the subscriber callback
// serially. Panics in the callback are not recovered: a broken handler
// should fail loudly, not stall a pipeline in silence.

package concurrency

import (
	"go.uber.org/zap"

	"github.com/momentics/hioload-gpio/api"
	"github.com/momentics/hioload-gpio/control"
)

// Dispatcher is the consumer half of one line's event pipeline.
type Dispatcher struct {
	queue api.EventQueue
	cb    api.Callback
	stats *control.Stats
	log   *zap.Logger
}

// NewDispatcher wires a dispatch loop over queue.
func NewDispatcher(queue api.EventQueue, cb api.Callback, stats *control.Stats, log *zap.Logger) *Dispatcher {
	return &Dispatcher{queue: queue, cb: cb, stats: stats, log: log}
}

// Run blocks until the queue reports shutdown. Call it on its own goroutine.
func (d *Dispatcher) Run() {
	for {
		v, ok := d.queue.Next()
		if !ok {
			if n := d.queue.Len(); n > 0 {
				d.stats.Abandoned.Add(uint64(n))
				d.log.Warn("abandoning queued events at shutdown", zap.Int("count", n))
			}
			return
		}
		d.cb(v)
		d.stats.Dispatched.Add(1)
	}
}
