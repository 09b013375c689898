// File: gpio/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package gpio is the facade of hioload-gpio: claim a line through the
// kernel's sysfs class interface, drive or sample it, and subscribe a
// callback to edge events detected by a poll-based pipeline.
//
// A Pin owns its kernel claim and, for interrupt pins, two goroutines:
// a detection loop polling the value attribute and a dispatch loop
// invoking the callback. Close tears everything down in order and
// releases the claim.
package gpio
