// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations for testing and development.
// Provides predictable, controllable behavior for the core interfaces.

package fake

import (
	"fmt"
	"os"

	"github.com/momentics/hioload-gpio/api"
)

// Ensure compile-time interface compliance.
var _ api.ValueSource = (*Line)(nil)

// Line is a pipe-backed api.ValueSource. Real sysfs value attributes
// signal POLLPRI on transitions, which only true sysfs files can do; a
// pipe delivers the same wait-then-read protocol through POLLIN, one
// level byte per fired edge.
type Line struct {
	r *os.File
	w *os.File
}

// NewLine builds a source primed with the given level, mirroring a value
// attribute that is always readable once at subscription time.
func NewLine(initial api.Value) (*Line, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	l := &Line{r: r, w: w}
	if err := l.Fire(initial); err != nil {
		l.Close()
		return nil, err
	}
	return l, nil
}

// Fire injects one level transition.
func (l *Line) Fire(v api.Value) error {
	_, err := l.w.Write([]byte(v.String()))
	return err
}

// Break closes the write side without cleanup, leaving the source in an
// error state: the next wait observes an unrequested hangup.
func (l *Line) Break() {
	l.w.Close()
}

// Fd returns the readable side for the multiplexed wait (POLLIN interest).
func (l *Line) Fd() int { return int(l.r.Fd()) }

// ReadValue consumes one injected level byte.
func (l *Line) ReadValue() (api.Value, error) {
	var buf [1]byte
	n, err := l.r.Read(buf[:])
	if err != nil {
		return api.Low, err
	}
	if n != 1 {
		return api.Low, fmt.Errorf("%w: %d bytes", api.ErrShortRead, n)
	}
	return api.ParseValue(buf[0])
}

// Close releases both pipe ends.
func (l *Line) Close() error {
	l.w.Close()
	return l.r.Close()
}
