package sysfs_test

import (
	"errors"
	"testing"
	"time"

	"github.com/momentics/hioload-gpio/api"
	"github.com/momentics/hioload-gpio/fake"
	"github.com/momentics/hioload-gpio/internal/sysfs"
)

func newTree(t *testing.T) (*fake.Sysfs, sysfs.FS) {
	t.Helper()
	sim, err := fake.NewSysfs(t.TempDir() + "/gpio")
	if err != nil {
		t.Fatalf("NewSysfs: %v", err)
	}
	if err := sim.AddChip(0, 32); err != nil {
		t.Fatalf("AddChip: %v", err)
	}
	if err := sim.AddChip(32, 16); err != nil {
		t.Fatalf("AddChip: %v", err)
	}
	sim.Start()
	t.Cleanup(sim.Stop)
	return sim, sysfs.New(sim.Root)
}

func claim(t *testing.T, fs sysfs.FS, id api.LineID) {
	t.Helper()
	if err := fs.Claim(id); err != nil {
		t.Fatalf("Claim(%d): %v", id, err)
	}
}

func TestValidateRoot(t *testing.T) {
	_, fs := newTree(t)
	if err := fs.ValidateRoot(); err != nil {
		t.Fatalf("ValidateRoot on a live tree: %v", err)
	}

	missing := sysfs.New(t.TempDir() + "/nope")
	if err := missing.ValidateRoot(); !errors.Is(err, api.ErrRootMissing) {
		t.Fatalf("expected ErrRootMissing, got %v", err)
	}
}

func TestDefaultRoot(t *testing.T) {
	fs := sysfs.New("")
	if fs.Root != sysfs.DefaultRoot {
		t.Fatalf("Root = %q, want %q", fs.Root, sysfs.DefaultRoot)
	}
}

func TestChipsEnumeration(t *testing.T) {
	_, fs := newTree(t)
	chips, err := fs.Chips()
	if err != nil {
		t.Fatalf("Chips: %v", err)
	}
	if len(chips) != 2 {
		t.Fatalf("found %d chips, want 2", len(chips))
	}
	covered := 0
	for _, c := range chips {
		covered += int(c.Count)
	}
	if covered != 48 {
		t.Fatalf("covered %d lines, want 48", covered)
	}
}

func TestInRange(t *testing.T) {
	_, fs := newTree(t)
	cases := []struct {
		id   api.LineID
		want bool
	}{
		{0, true},
		{15, true},
		{31, true},
		{32, true},
		{47, true},
		{48, false},
		{9999, false},
	}
	for _, c := range cases {
		got, err := fs.InRange(c.id)
		if err != nil {
			t.Fatalf("InRange(%d): %v", c.id, err)
		}
		if got != c.want {
			t.Errorf("InRange(%d) = %v, want %v", c.id, got, c.want)
		}
	}
}

func TestClaimSettlesAndReleases(t *testing.T) {
	sim, fs := newTree(t)

	claim(t, fs, 15)
	if !fs.Claimed(15) {
		t.Fatal("line 15 should be claimed")
	}
	if n := sim.Exports(15); n != 1 {
		t.Fatalf("Exports = %d, want 1", n)
	}

	if err := fs.Release(15); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := sim.WaitIdle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if fs.Claimed(15) {
		t.Fatal("line 15 should be released")
	}
	if n := sim.Releases(15); n != 1 {
		t.Fatalf("Releases = %d, want 1", n)
	}
}

// A claim against a tree nobody is settling must time out, not hang.
func TestClaimTimesOutUnsettled(t *testing.T) {
	sim, err := fake.NewSysfs(t.TempDir() + "/gpio")
	if err != nil {
		t.Fatalf("NewSysfs: %v", err)
	}
	// Scanner never started.
	fs := sysfs.New(sim.Root)
	if err := fs.Claim(15); !errors.Is(err, api.ErrLineVanished) {
		t.Fatalf("expected ErrLineVanished, got %v", err)
	}
}

func TestAttributeWrites(t *testing.T) {
	sim, fs := newTree(t)
	claim(t, fs, 15)

	if err := fs.SetDirection(15, api.Out); err != nil {
		t.Fatalf("SetDirection: %v", err)
	}
	if err := fs.SetEdge(15, api.EdgeRising); err != nil {
		t.Fatalf("SetEdge: %v", err)
	}
	if err := fs.SetActiveHigh(15); err != nil {
		t.Fatalf("SetActiveHigh: %v", err)
	}

	for attr, want := range map[string]string{
		"direction":  "out",
		"edge":       "rising",
		"active_low": "0",
	} {
		got, err := sim.AttrOf(15, attr)
		if err != nil {
			t.Fatalf("AttrOf(%s): %v", attr, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", attr, got, want)
		}
	}
}

func TestWriteAndReadValue(t *testing.T) {
	sim, fs := newTree(t)
	claim(t, fs, 3)

	if err := fs.WriteValue(3, api.High); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	if v, err := fs.ReadValue(3); err != nil || v != api.High {
		t.Fatalf("ReadValue = %v, %v; want High", v, err)
	}
	if v, err := sim.LevelOf(3); err != nil || v != api.High {
		t.Fatalf("simulator sees %v, %v; want High", v, err)
	}

	// External driver flips the level; a fresh read must see it.
	if err := sim.SetLevel(3, api.Low); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if v, err := fs.ReadValue(3); err != nil || v != api.Low {
		t.Fatalf("ReadValue = %v, %v; want Low", v, err)
	}
}

// Attribute files are kernel-created; writes must not invent them.
func TestWriteAttrRequiresExistingFile(t *testing.T) {
	sim, err := fake.NewSysfs(t.TempDir() + "/gpio")
	if err != nil {
		t.Fatalf("NewSysfs: %v", err)
	}
	sim.AddChip(0, 32)
	sim.OmitAttr("direction")
	sim.Start()
	t.Cleanup(sim.Stop)

	fs := sysfs.New(sim.Root)
	claim(t, fs, 7)

	if err := fs.SetDirection(7, api.In); err == nil {
		t.Fatal("SetDirection should fail when the attribute is missing")
	}
	// The claim survives the failed attribute write.
	if !fs.Claimed(7) {
		t.Fatal("claim should remain after a failed attribute write")
	}
}
