//go:build !linux

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub for platforms without thread affinity support.

package affinity

import "errors"

func setAffinityPlatform(cpuID int) error {
	return errors.New("affinity: not supported on this platform")
}
