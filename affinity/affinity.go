// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations
// live in separate files guarded by build tags. Pinning a detection loop's
// thread next to the interrupt-handling core keeps its cache warm and its
// wakeup latency flat.

package affinity

// SetAffinity pins the calling OS thread to a given logical CPU. The
// caller must hold the thread with runtime.LockOSThread first, or the
// scheduler migrates the goroutine right off the pinned thread.
// On unsupported platforms it returns an error.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}
