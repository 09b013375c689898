// File: internal/sysfs/sysfs.go
// Package sysfs drives the kernel GPIO class interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FS wraps one GPIO class root. Claims append to the export command file
// and wait for udev to settle the line directory; state changes
// truncate-write attribute files inside it.

package sysfs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/momentics/hioload-gpio/api"
)

const (
	// DefaultRoot is the kernel's GPIO class mount point.
	DefaultRoot = "/sys/class/gpio"

	settleAttempts = 100
	settleEvery    = 2 * time.Millisecond
)

// FS wraps a GPIO class root directory.
type FS struct {
	Root string
}

// New returns an FS over root, or DefaultRoot when root is empty.
func New(root string) FS {
	if root == "" {
		root = DefaultRoot
	}
	return FS{Root: root}
}

// ValidateRoot confirms the class directory exists.
func (f FS) ValidateRoot() error {
	fi, err := os.Stat(f.Root)
	if err != nil || !fi.IsDir() {
		return fmt.Errorf("%w: %s", api.ErrRootMissing, f.Root)
	}
	return nil
}

// Chip is one gpiochip entry under the root.
type Chip struct {
	Name  string
	Base  uint32
	Count uint32
}

// Covers reports whether id falls inside the chip's line range.
func (c Chip) Covers(id api.LineID) bool {
	n := uint32(id)
	return n >= c.Base && n < c.Base+c.Count
}

// Chips enumerates the controllers under the root. Entries that fail to
// parse are skipped: a class directory may hold unrelated nodes.
func (f FS) Chips() ([]Chip, error) {
	entries, err := os.ReadDir(f.Root)
	if err != nil {
		return nil, fmt.Errorf("scan gpio root: %w", err)
	}
	var chips []Chip
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "gpiochip") {
			continue
		}
		// Chip entries are symlinks on real kernels; Stat follows them.
		fi, err := os.Stat(filepath.Join(f.Root, name))
		if err != nil || !fi.IsDir() {
			continue
		}
		base, err := readUint(filepath.Join(f.Root, name, "base"))
		if err != nil {
			continue
		}
		count, err := readUint(filepath.Join(f.Root, name, "ngpio"))
		if err != nil {
			continue
		}
		chips = append(chips, Chip{Name: name, Base: base, Count: count})
	}
	return chips, nil
}

// InRange reports whether some controller covers id.
func (f FS) InRange(id api.LineID) (bool, error) {
	chips, err := f.Chips()
	if err != nil {
		return false, err
	}
	for _, c := range chips {
		if c.Covers(id) {
			return true, nil
		}
	}
	return false, nil
}

// Claimed reports whether the line directory exists.
func (f FS) Claimed(id api.LineID) bool {
	_, err := os.Stat(f.LinePath(id))
	return err == nil
}

// Claim exports the line and waits for its directory to settle.
func (f FS) Claim(id api.LineID) error {
	if err := f.appendCmd("export", id); err != nil {
		return fmt.Errorf("export line %d: %w", id, err)
	}
	for i := 0; i < settleAttempts; i++ {
		if f.Claimed(id) {
			return nil
		}
		time.Sleep(settleEvery)
	}
	return fmt.Errorf("line %d: %w", id, api.ErrLineVanished)
}

// Release unexports the line.
func (f FS) Release(id api.LineID) error {
	if err := f.appendCmd("unexport", id); err != nil {
		return fmt.Errorf("unexport line %d: %w", id, err)
	}
	return nil
}

// SetDirection configures the line as input or output.
func (f FS) SetDirection(id api.LineID, d api.Direction) error {
	return f.writeAttr(id, "direction", d.String())
}

// SetEdge selects the transitions that raise events on an input line.
func (f FS) SetEdge(id api.LineID, e api.Edge) error {
	return f.writeAttr(id, "edge", e.String())
}

// SetActiveHigh clears active_low so levels report physical polarity.
func (f FS) SetActiveHigh(id api.LineID) error {
	return f.writeAttr(id, "active_low", "0")
}

// WriteValue stores a level on an output line.
func (f FS) WriteValue(id api.LineID, v api.Value) error {
	return f.writeAttr(id, "value", v.String())
}

// ReadValue samples the stored level with a one-shot read.
func (f FS) ReadValue(id api.LineID) (api.Value, error) {
	data, err := os.ReadFile(f.ValuePath(id))
	if err != nil {
		return api.Low, fmt.Errorf("read value of line %d: %w", id, err)
	}
	if len(data) == 0 {
		return api.Low, fmt.Errorf("line %d: %w: empty attribute", id, api.ErrShortRead)
	}
	v, err := api.ParseValue(data[0])
	if err != nil {
		return api.Low, fmt.Errorf("line %d: %w", id, err)
	}
	return v, nil
}

// LinePath returns the line's sysfs directory.
func (f FS) LinePath(id api.LineID) string {
	return filepath.Join(f.Root, fmt.Sprintf("gpio%d", id))
}

// ValuePath returns the line's value attribute path.
func (f FS) ValuePath(id api.LineID) string {
	return filepath.Join(f.LinePath(id), "value")
}

// writeAttr truncate-writes one attribute file. The file must already
// exist: attributes are created by the kernel, never by this library.
func (f FS) writeAttr(id api.LineID, attr, s string) error {
	path := filepath.Join(f.LinePath(id), attr)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("write %s of line %d: %w", attr, id, err)
	}
	_, werr := file.WriteString(s)
	cerr := file.Close()
	if werr != nil {
		return fmt.Errorf("write %s of line %d: %w", attr, id, werr)
	}
	if cerr != nil {
		return fmt.Errorf("write %s of line %d: %w", attr, id, cerr)
	}
	return nil
}

// appendCmd appends one id to a class command file. export/unexport are
// command streams, not stored state; appends keep concurrent commands
// from clobbering each other.
func (f FS) appendCmd(name string, id api.LineID) error {
	file, err := os.OpenFile(filepath.Join(f.Root, name), os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return err
	}
	_, werr := fmt.Fprintf(file, "%d\n", id)
	cerr := file.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

func readUint(path string) (uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
