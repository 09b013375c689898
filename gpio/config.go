// File: gpio/config.go
// Unified configuration for line handles.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package gpio

import (
	"go.uber.org/zap"

	"github.com/momentics/hioload-gpio/api"
	"github.com/momentics/hioload-gpio/internal/sysfs"
)

// Config holds parameters immutable per line handle.
type Config struct {
	SysfsRoot         string         // GPIO class directory; empty means the kernel default
	Discipline        api.Discipline // Event channel between detection and dispatch
	RingCapacity      int            // Bounded ring slots, rounded up to a power of two
	LockWatcherThread bool           // Pin the detection goroutine to its OS thread
	WatcherCPU        int            // Logical CPU for the locked thread; negative leaves placement to the scheduler
	Logger            *zap.Logger    // Diagnostics sink; nil stays silent
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		SysfsRoot:         sysfs.DefaultRoot,       // /sys/class/gpio
		Discipline:        api.DisciplineUnbounded, // never stalls the detector
		RingCapacity:      64,                      // bounded-mode burst absorption
		LockWatcherThread: false,                   // no OS thread pinning
		WatcherCPU:        -1,                      // no CPU affinity
		Logger:            nil,                     // normalized to zap.NewNop
	}
}

// normalized returns a defaults-filled copy; nil means DefaultConfig.
func (c *Config) normalized() *Config {
	cfg := DefaultConfig()
	if c != nil {
		*cfg = *c
	}
	if cfg.SysfsRoot == "" {
		cfg.SysfsRoot = sysfs.DefaultRoot
	}
	if cfg.RingCapacity <= 0 {
		cfg.RingCapacity = 64
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}
