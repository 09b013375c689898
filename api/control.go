// File: api/control.go
// Package api defines Control interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control exposes configuration and runtime counters of a line handle.
type Control interface {
	// GetConfig returns a snapshot of the effective configuration.
	GetConfig() map[string]any
	// SetConfig rejects changes: configuration is fixed at construction.
	SetConfig(cfg map[string]any) error
	// Stats returns runtime counters merged with debug probe output.
	Stats() map[string]any
	// RegisterDebugProbe attaches a named live-state probe.
	RegisterDebugProbe(name string, fn func() any)
}
