// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control over control package primitives.

package adapters

import (
	"github.com/momentics/hioload-gpio/api"
	"github.com/momentics/hioload-gpio/control"
)

// Ensure compile-time interface compliance.
var _ api.Control = (*ControlAdapter)(nil)

// ControlAdapter exposes one handle's frozen configuration and live
// counters through the api.Control contract.
type ControlAdapter struct {
	line   api.LineID
	config map[string]any
	stats  *control.Stats
	debug  *control.DebugProbes
}

// NewControlAdapter freezes cfg and binds the live registries.
func NewControlAdapter(line api.LineID, cfg map[string]any, stats *control.Stats, debug *control.DebugProbes) *ControlAdapter {
	frozen := make(map[string]any, len(cfg))
	for k, v := range cfg {
		frozen[k] = v
	}
	return &ControlAdapter{
		line:   line,
		config: frozen,
		stats:  stats,
		debug:  debug,
	}
}

// GetConfig returns a copy of the configuration settled at construction.
func (c *ControlAdapter) GetConfig() map[string]any {
	out := make(map[string]any, len(c.config))
	for k, v := range c.config {
		out[k] = v
	}
	return out
}

// SetConfig always refuses: line configuration is fixed at construction.
func (c *ControlAdapter) SetConfig(map[string]any) error {
	return api.NewError(api.ErrCodeConfig, c.line, "set config", api.ErrImmutable)
}

// Stats merges pipeline counters with debug probe output.
func (c *ControlAdapter) Stats() map[string]any {
	combined := c.stats.Snapshot()
	for k, v := range c.debug.DumpState() {
		combined["debug."+k] = v
	}
	return combined
}

// RegisterDebugProbe attaches a named live-state probe.
func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}
