// Package api
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy shared by all hioload-gpio packages. Every failure
// surfaced to callers is an *Error classified by recovery strategy;
// sentinel causes below allow fine-grained errors.Is matching.

package api

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by *Error.
var (
	ErrRootMissing  = errors.New("sysfs gpio root is not present")
	ErrLineRange    = errors.New("line is outside every controller range")
	ErrLineClaimed  = errors.New("line is already exported")
	ErrLineVanished = errors.New("line directory did not appear after export")
	ErrNotOutput    = errors.New("line is not configured as output")
	ErrBadLevel     = errors.New("unexpected level byte")
	ErrShortRead    = errors.New("short value read")
	ErrNilCallback  = errors.New("subscription requires a callback")
	ErrEdgeNone     = errors.New("edge \"none\" raises no events")
	ErrImmutable    = errors.New("configuration is fixed at construction")
)

// ErrorCode classifies an error by what the caller can do about it.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	// ErrCodeConfig marks caller mistakes: invalid arguments or an absent
	// sysfs interface. Retrying with the same inputs cannot succeed.
	ErrCodeConfig
	// ErrCodeConflict marks lines already claimed, by this process or
	// another. Retrying may succeed after the current owner releases.
	ErrCodeConflict
	// ErrCodeIO marks kernel interface failures: export and attribute
	// writes, value reads, the multiplexed wait.
	ErrCodeIO
)

// String names the code for diagnostics.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeConfig:
		return "config"
	case ErrCodeConflict:
		return "conflict"
	case ErrCodeIO:
		return "io"
	default:
		return "ok"
	}
}

// Error is a structured error carrying the affected line and the
// operation that failed.
type Error struct {
	Code ErrorCode
	Line LineID
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("gpio %d: %s: %s error", e.Line, e.Op, e.Code)
	}
	return fmt.Sprintf("gpio %d: %s: %v", e.Line, e.Op, e.Err)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Err }

// NewError creates a structured error.
func NewError(code ErrorCode, line LineID, op string, err error) *Error {
	return &Error{Code: code, Line: line, Op: op, Err: err}
}

// CodeOf extracts the ErrorCode from err, or ErrCodeOK when err carries none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeOK
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool { return CodeOf(err) == ErrCodeConfig }

// IsConflict reports whether err is a resource conflict.
func IsConflict(err error) bool { return CodeOf(err) == ErrCodeConflict }

// IsIO reports whether err is a kernel interface failure.
func IsIO(err error) bool { return CodeOf(err) == ErrCodeIO }
