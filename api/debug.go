// File: api/debug.go
// Package api defines the live introspection contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Debug exposes named live-state probes of a running pipeline.
type Debug interface {
	// DumpState evaluates every registered probe and returns a snapshot.
	DumpState() map[string]any
	// RegisterProbe attaches a named probe. Re-registering a name
	// replaces the previous probe.
	RegisterProbe(name string, fn func() any)
}
