// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Concurrency primitives for the hioload-gpio event pipeline: a lock-free
// SPSC ring, the two event channel disciplines, pipe-based cancellation,
// the poll(2) multiplexed waiter, and the detection/dispatch loops.
//
// The pipeline of one line handle is strictly single-producer,
// single-consumer: one Watcher goroutine detects transitions, one
// Dispatcher goroutine invokes the subscriber callback. Everything here
// is sized and ordered for that shape.
package concurrency
