//go:build linux

// File: affinity/affinity_linux_test.go
// Author: momentics <momentics@gmail.com>

package affinity_test

import (
	"runtime"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-gpio/affinity"
)

func TestSetAffinityRejectsNegativeCPU(t *testing.T) {
	if err := affinity.SetAffinity(-1); err == nil {
		t.Fatal("negative cpu accepted")
	}
}

func TestSetAffinityRejectsHugeCPU(t *testing.T) {
	if err := affinity.SetAffinity(1 << 20); err == nil {
		t.Fatal("out-of-range cpu accepted")
	}
}

func TestSetAffinityPinsCallingThread(t *testing.T) {
	// Pick a CPU actually allowed for this process; CI sandboxes often run
	// under a restricted cpuset.
	var allowed unix.CPUSet
	if err := unix.SchedGetaffinity(0, &allowed); err != nil {
		t.Skipf("SchedGetaffinity: %v", err)
	}
	cpu := -1
	for i := 0; i < 1024; i++ {
		if allowed.IsSet(i) {
			cpu = i
			break
		}
	}
	if cpu < 0 {
		t.Skip("no allowed cpu found")
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if err := affinity.SetAffinity(cpu); err != nil {
		t.Fatalf("SetAffinity(%d): %v", cpu, err)
	}

	var got unix.CPUSet
	if err := unix.SchedGetaffinity(0, &got); err != nil {
		t.Fatalf("SchedGetaffinity: %v", err)
	}
	if !got.IsSet(cpu) || got.Count() != 1 {
		t.Fatalf("thread mask = %d cpus, cpu %d set = %v", got.Count(), cpu, got.IsSet(cpu))
	}
}
