//go:build linux

// File: internal/concurrency/watcher_linux.go
// Package concurrency implements the edge detection loop.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Watcher owns the poll side of one line: it discards the level pending at
// subscription time, then loops wait, sample, push until shutdown or a
// fatal kernel error. It is the only goroutine touching the source fd.

package concurrency

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/momentics/hioload-gpio/affinity"
	"github.com/momentics/hioload-gpio/api"
	"github.com/momentics/hioload-gpio/control"
)

// WatcherConfig carries the pieces a detection loop needs.
type WatcherConfig struct {
	Line   api.LineID
	Source api.ValueSource
	// Events is the poll interest mask for the source descriptor.
	Events int16
	Cancel *Cancel
	Queue  api.EventQueue
	Stats  *control.Stats
	// Pinned locks the loop to its OS thread for latency-sensitive setups.
	Pinned bool
	// CPU binds the locked thread to one logical CPU; negative skips
	// affinity. Only honored together with Pinned.
	CPU int
	Log *zap.Logger
}

// Watcher is the detection half of one line's event pipeline.
type Watcher struct {
	line   api.LineID
	src    api.ValueSource
	waiter *Waiter
	queue  api.EventQueue
	stats  *control.Stats
	log    *zap.Logger
	pinned bool
	cpu    int

	mu  sync.Mutex
	err error
}

// NewWatcher wires a detection loop over cfg.Source.
func NewWatcher(cfg WatcherConfig) *Watcher {
	return &Watcher{
		line:   cfg.Line,
		src:    cfg.Source,
		waiter: NewWaiter(cfg.Source.Fd(), cfg.Events, cfg.Cancel),
		queue:  cfg.Queue,
		stats:  cfg.Stats,
		log:    cfg.Log,
		pinned: cfg.Pinned,
		cpu:    cfg.CPU,
	}
}

// Run blocks until shutdown or a fatal error. Call it on its own goroutine.
func (w *Watcher) Run() {
	if w.pinned {
		defer w.lockThread()()
	}

	// The source always reads as ready once at subscription time; consume
	// that level so only genuine transitions reach the queue.
	if _, err := w.src.ReadValue(); err != nil {
		w.fail("prime read", err)
		return
	}

	for {
		outcome, err := w.waiter.Wait()
		if err != nil {
			w.fail("poll", err)
			return
		}
		if outcome == WaitCanceled {
			return
		}

		v, err := w.src.ReadValue()
		if err != nil {
			w.fail("sample", err)
			return
		}
		w.stats.Detected.Add(1)

		// Full bounded channel: retry until space frees, never drop.
		for !w.queue.Push(v) {
			w.stats.PushRetries.Add(1)
			runtime.Gosched()
		}
	}
}

// lockThread pins the loop to its OS thread and, when a CPU is chosen,
// narrows that thread's affinity mask. The returned release hands the
// thread back to the scheduler only while its mask is untouched: the
// runtime never resets affinity, so a narrowed thread must stay locked
// and die with the loop rather than rejoin the pool.
func (w *Watcher) lockThread() func() {
	runtime.LockOSThread()
	if w.cpu < 0 {
		return runtime.UnlockOSThread
	}
	// A placement failure costs latency, not correctness.
	if err := affinity.SetAffinity(w.cpu); err != nil {
		w.log.Warn("watcher thread affinity not applied",
			zap.Uint16("line", uint16(w.line)),
			zap.Int("cpu", w.cpu),
			zap.Error(err))
		return runtime.UnlockOSThread
	}
	return func() {}
}

// Err returns the fatal error that stopped the loop, if any.
func (w *Watcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *Watcher) fail(op string, err error) {
	w.mu.Lock()
	if w.err == nil {
		w.err = api.NewError(api.ErrCodeIO, w.line, op, err)
	}
	w.mu.Unlock()
	w.log.Error("edge watch stopped",
		zap.Uint16("line", uint16(w.line)),
		zap.String("op", op),
		zap.Error(err))
}
