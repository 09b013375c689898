// File: api/shutdown.go
// Package api defines unified graceful shutdown contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// GracefulShutdown is implemented by components owning goroutines or
// kernel resources.
type GracefulShutdown interface {
	// Shutdown stops internal loops in order and releases resources.
	// It is idempotent.
	Shutdown() error
}
