//go:build linux

// File: internal/concurrency/waiter_linux.go
// Package concurrency implements the multiplexed readiness wait.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Waiter blocks in poll(2) on two descriptors at once: the line level
// source with a caller-chosen interest mask, and the cancellation pipe.
// Any revents on the pipe slot mean shutdown; the kernel reports hang-up
// there without being asked.

package concurrency

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// WaitOutcome reports why Wait returned without error.
type WaitOutcome uint8

const (
	// WaitReady means the source descriptor matched its interest mask.
	WaitReady WaitOutcome = iota
	// WaitCanceled means shutdown was requested.
	WaitCanceled
)

// Waiter multiplexes one readiness descriptor with a Cancel.
type Waiter struct {
	fds    [2]unix.PollFd
	events int16
	cancel *Cancel
}

// NewWaiter prepares a wait over fd with the given interest mask
// (POLLPRI for sysfs value attributes, POLLIN for pipes).
func NewWaiter(fd int, events int16, cancel *Cancel) *Waiter {
	w := &Waiter{events: events, cancel: cancel}
	w.fds[0] = unix.PollFd{Fd: int32(fd), Events: events}
	w.fds[1] = unix.PollFd{Fd: int32(cancel.ReadFd()), Events: unix.POLLRDHUP}
	return w
}

// Wait blocks until the source is ready or shutdown is observed.
// When both fire in one wake-up, shutdown wins and the pending readiness
// is dropped.
func (w *Waiter) Wait() (WaitOutcome, error) {
	if w.cancel.Canceled() {
		return WaitCanceled, nil
	}
	for {
		w.fds[0].Revents = 0
		w.fds[1].Revents = 0

		n, err := unix.Poll(w.fds[:], -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			if w.cancel.Canceled() {
				return WaitCanceled, nil
			}
			return 0, err
		}
		if n == 0 {
			// Infinite timeout cannot legally time out.
			return 0, fmt.Errorf("poll: ready with no descriptors")
		}
		if w.fds[1].Revents != 0 {
			return WaitCanceled, nil
		}
		if w.fds[0].Revents&w.events != 0 {
			return WaitReady, nil
		}
		// POLLERR/POLLHUP/POLLNVAL on the source without the requested
		// bit: the line is in an error state, not readable.
		return 0, fmt.Errorf("poll: unexpected revents %#x on level source", w.fds[0].Revents)
	}
}
