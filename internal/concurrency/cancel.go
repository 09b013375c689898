// File: internal/concurrency/cancel.go
// Package concurrency implements the cooperative cancellation primitive.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cancel pairs a latched flag with a pipe. The flag answers "was shutdown
// requested"; closing the pipe's write end answers "wake up now" for any
// poll sleeping on the read end.

package concurrency

import (
	"os"
	"sync"
	"sync/atomic"
)

// Cancel is the one-shot shutdown signal shared by both loops of a handle.
type Cancel struct {
	flag atomic.Bool
	r    *os.File
	w    *os.File
	rfd  int

	hangupOnce sync.Once
	closeOnce  sync.Once
}

// NewCancel builds the wakeup pipe.
func NewCancel() (*Cancel, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	return &Cancel{r: r, w: w, rfd: int(r.Fd())}, nil
}

// Set latches the shutdown flag. It never resets.
func (c *Cancel) Set() { c.flag.Store(true) }

// Canceled reports whether Set has been called.
func (c *Cancel) Canceled() bool { return c.flag.Load() }

// ReadFd returns the poll side of the wakeup pipe. The descriptor stays
// valid until Close, so waiters need no further coordination with teardown.
func (c *Cancel) ReadFd() int { return c.rfd }

// Hangup closes the write end, raising POLLHUP on any wait that includes
// ReadFd. The read end stays open so a wait entered late still polls a
// valid descriptor; call Close once the waiters are joined.
func (c *Cancel) Hangup() {
	c.hangupOnce.Do(func() { c.w.Close() })
}

// Close releases both pipe ends. Idempotent.
func (c *Cancel) Close() error {
	c.Hangup()
	c.closeOnce.Do(func() { c.r.Close() })
	return nil
}
