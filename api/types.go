// File: api/types.go
// Package api defines the shared contracts of the hioload-gpio library.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "fmt"

// LineID identifies a GPIO line by its global sysfs number. The kernel
// assigns each controller a base and a line count; a LineID is valid when
// it falls inside some controller's [base, base+count) range.
type LineID uint16

// Direction configures a line as input or output.
type Direction uint8

const (
	In Direction = iota
	Out
)

// String returns the sysfs "direction" attribute encoding.
func (d Direction) String() string {
	if d == Out {
		return "out"
	}
	return "in"
}

// Edge selects which level transitions raise events on an input line.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// String returns the sysfs "edge" attribute encoding.
func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}

// Value is a sampled logical line level.
type Value uint8

const (
	Low Value = iota
	High
)

// String returns the sysfs "value" attribute encoding.
func (v Value) String() string {
	if v == High {
		return "1"
	}
	return "0"
}

// ParseValue maps a sysfs level byte to a Value.
func ParseValue(b byte) (Value, error) {
	switch b {
	case '0':
		return Low, nil
	case '1':
		return High, nil
	default:
		return Low, fmt.Errorf("%w: %q", ErrBadLevel, b)
	}
}

// Callback handles one detected transition. The dispatch loop invokes it
// from a single goroutine, in detection order, and does not recover panics.
type Callback func(Value)

// Discipline selects the event channel between detection and dispatch.
type Discipline uint8

const (
	// DisciplineUnbounded buffers without capacity. The detector never
	// waits on the consumer; events still queued at shutdown are abandoned.
	DisciplineUnbounded Discipline = iota
	// DisciplineBounded uses a fixed lock-free ring. The detector
	// busy-retries a full ring rather than dropping, and queued events
	// drain before the consumer honors shutdown.
	DisciplineBounded
)

// String names the discipline for diagnostics.
func (d Discipline) String() string {
	if d == DisciplineBounded {
		return "bounded"
	}
	return "unbounded"
}
