// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime counters and debug introspection layer for hioload-gpio.
//
// Provides concurrent-safe state handling primitives:
//   - Atomic pipeline counters with snapshot export
//   - Debug hooks and probe registration
//
// Counters are written on the hot detection/dispatch paths and must stay
// lock-free; everything else is read-side tooling.
package control
