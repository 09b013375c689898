// File: api/line.go
// Package api defines the readable line level source contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// ValueSource is one readable line level entry. On real kernels this is
// the sysfs value attribute opened for non-blocking reads; tests substitute
// a pipe. The descriptor feeds the multiplexed wait; ReadValue samples the
// level after a readiness wake, consuming the wake in the process.
type ValueSource interface {
	// Fd returns the pollable descriptor. It stays valid until Close.
	Fd() int

	// ReadValue samples the current level.
	ReadValue() (Value, error)

	// Close releases the descriptor.
	Close() error
}
