// control/stats.go
// Author: momentics <momentics@gmail.com>
//
// Pipeline counters for a single line handle. Written lock-free from the
// detection and dispatch goroutines, snapshotted from anywhere.

package control

import "sync/atomic"

// Stats aggregates the counters of one event pipeline.
type Stats struct {
	// Detected counts level transitions observed by the detection loop.
	Detected atomic.Uint64
	// Dispatched counts callback invocations that ran to completion.
	Dispatched atomic.Uint64
	// PushRetries counts busy-retry spins on a full bounded channel.
	PushRetries atomic.Uint64
	// Abandoned counts events still queued when dispatch shut down.
	Abandoned atomic.Uint64
}

// NewStats creates a zeroed counter set.
func NewStats() *Stats {
	return &Stats{}
}

// Snapshot returns the current counter values keyed for Stats() export.
func (s *Stats) Snapshot() map[string]any {
	return map[string]any{
		"events.detected":     s.Detected.Load(),
		"events.dispatched":   s.Dispatched.Load(),
		"events.push_retries": s.PushRetries.Load(),
		"events.abandoned":    s.Abandoned.Load(),
	}
}
