//go:build linux

// File: internal/sysfs/line_linux.go
// Package sysfs drives the kernel GPIO class interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// LineFile is the value attribute held open for the detection loop:
// a non-blocking descriptor sampled by rewind-and-read.

package sysfs

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-gpio/api"
)

// Ensure compile-time interface compliance.
var _ api.ValueSource = (*LineFile)(nil)

// LineFile keeps one value attribute open for repeated sampling.
type LineFile struct {
	fd   int
	path string
}

// OpenLine opens the value attribute of a claimed line.
func (f FS) OpenLine(id api.LineID) (*LineFile, error) {
	path := f.ValuePath(id)
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &LineFile{fd: fd, path: path}, nil
}

// Fd returns the descriptor for the multiplexed wait (POLLPRI interest).
func (l *LineFile) Fd() int { return l.fd }

// ReadValue rewinds and samples the level. sysfs serves the level byte
// plus a trailing newline; any other length is a malformed read.
func (l *LineFile) ReadValue() (api.Value, error) {
	if _, err := unix.Seek(l.fd, 0, 0); err != nil {
		return api.Low, fmt.Errorf("seek %s: %w", l.path, err)
	}
	var buf [2]byte
	n, err := unix.Read(l.fd, buf[:])
	if err != nil {
		return api.Low, fmt.Errorf("read %s: %w", l.path, err)
	}
	if n != len(buf) {
		return api.Low, fmt.Errorf("%s: %w: %d bytes", l.path, api.ErrShortRead, n)
	}
	return api.ParseValue(buf[0])
}

// Close releases the descriptor.
func (l *LineFile) Close() error {
	return unix.Close(l.fd)
}
