//go:build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux platform probes surfaced through the debug registry.

package control

import "runtime"

// RegisterPlatformProbes attaches host-level probes: available CPUs and
// live goroutines. Handy when tuning watcher thread placement.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.goroutines", func() any {
		return runtime.NumGoroutine()
	})
}
