//go:build linux

// File: gpio/pin.go
// Line handle facade: claim, configure, drive, watch, tear down.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pin aggregates the sysfs claim, the held-open value descriptor, the
// cancellation primitive, the event channel, and the two pipeline
// goroutines behind one handle. Construction validates in a fixed order
// and fails fast; Close shuts the pipeline down in the reverse order the
// resources were acquired.

package gpio

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-gpio/adapters"
	"github.com/momentics/hioload-gpio/api"
	"github.com/momentics/hioload-gpio/control"
	"github.com/momentics/hioload-gpio/internal/concurrency"
	"github.com/momentics/hioload-gpio/internal/sysfs"
)

// Ensure compile-time interface compliance.
var _ api.GracefulShutdown = (*Pin)(nil)

// Pin is one claimed GPIO line.
type Pin struct {
	id   api.LineID
	dir  api.Direction
	edge api.Edge
	cfg  *Config
	fs   sysfs.FS
	log  *zap.Logger

	// Interrupt pipeline; nil/unused for plain pins.
	line      *sysfs.LineFile
	cancel    *concurrency.Cancel
	queue     api.EventQueue
	watcher   *concurrency.Watcher
	watchDone chan struct{}
	dispDone  chan struct{}

	stats  *control.Stats
	probes *control.DebugProbes
	ctrl   api.Control

	closeOnce sync.Once
}

// Open claims a line for plain input or output. No events are detected;
// use OpenInterrupt for that.
func Open(id api.LineID, dir api.Direction, cfg *Config) (*Pin, error) {
	p, err := prepare(id, dir, api.EdgeNone, cfg)
	if err != nil {
		return nil, err
	}
	// Outputs start at a known level.
	if dir == api.Out {
		if err := p.fs.WriteValue(id, api.Low); err != nil {
			return nil, api.NewError(api.ErrCodeIO, id, "init value", err)
		}
	}
	p.finishControl()
	return p, nil
}

// OpenInterrupt claims an input line and dispatches edge events to cb.
func OpenInterrupt(id api.LineID, edge api.Edge, cb api.Callback, cfg *Config) (*Pin, error) {
	if cb == nil {
		return nil, api.NewError(api.ErrCodeConfig, id, "subscribe", api.ErrNilCallback)
	}
	if edge == api.EdgeNone {
		return nil, api.NewError(api.ErrCodeConfig, id, "subscribe", api.ErrEdgeNone)
	}

	p, err := prepare(id, api.In, edge, cfg)
	if err != nil {
		return nil, err
	}
	if err := p.fs.SetEdge(id, edge); err != nil {
		return nil, api.NewError(api.ErrCodeIO, id, "set edge", err)
	}

	line, err := p.fs.OpenLine(id)
	if err != nil {
		return nil, api.NewError(api.ErrCodeIO, id, "open value", err)
	}
	cancel, err := concurrency.NewCancel()
	if err != nil {
		line.Close()
		return nil, api.NewError(api.ErrCodeIO, id, "wakeup pipe", err)
	}

	p.line = line
	p.cancel = cancel
	switch p.cfg.Discipline {
	case api.DisciplineBounded:
		p.queue = concurrency.NewSpinQueue(p.cfg.RingCapacity, cancel)
	default:
		p.queue = concurrency.NewCondQueue(cancel)
	}
	p.watcher = concurrency.NewWatcher(concurrency.WatcherConfig{
		Line:   id,
		Source: line,
		Events: unix.POLLPRI,
		Cancel: cancel,
		Queue:  p.queue,
		Stats:  p.stats,
		Pinned: p.cfg.LockWatcherThread,
		CPU:    p.cfg.WatcherCPU,
		Log:    p.log.Named("watch"),
	})
	dispatcher := concurrency.NewDispatcher(p.queue, cb, p.stats, p.log.Named("dispatch"))

	p.dispDone = make(chan struct{})
	p.watchDone = make(chan struct{})
	go func() {
		dispatcher.Run()
		close(p.dispDone)
	}()
	go func() {
		p.watcher.Run()
		close(p.watchDone)
	}()

	p.probes.RegisterProbe("queue.len", func() any { return p.queue.Len() })
	p.finishControl()
	return p, nil
}

// prepare runs the shared validation ladder: root, range, conflict,
// claim, direction, polarity. A failure after the claim leaves the line
// exported on purpose; recovery is an external unexport, matching the
// kernel's view that the claim succeeded.
func prepare(id api.LineID, dir api.Direction, edge api.Edge, cfg *Config) (*Pin, error) {
	ncfg := cfg.normalized()
	fs := sysfs.New(ncfg.SysfsRoot)

	if err := fs.ValidateRoot(); err != nil {
		return nil, api.NewError(api.ErrCodeConfig, id, "validate root", err)
	}
	ok, err := fs.InRange(id)
	if err != nil {
		return nil, api.NewError(api.ErrCodeIO, id, "scan controllers", err)
	}
	if !ok {
		return nil, api.NewError(api.ErrCodeConfig, id, "validate line", api.ErrLineRange)
	}
	if fs.Claimed(id) {
		return nil, api.NewError(api.ErrCodeConflict, id, "claim", api.ErrLineClaimed)
	}
	if err := fs.Claim(id); err != nil {
		return nil, api.NewError(api.ErrCodeIO, id, "claim", err)
	}
	if err := fs.SetDirection(id, dir); err != nil {
		return nil, api.NewError(api.ErrCodeIO, id, "set direction", err)
	}
	if err := fs.SetActiveHigh(id); err != nil {
		return nil, api.NewError(api.ErrCodeIO, id, "set polarity", err)
	}

	return &Pin{
		id:     id,
		dir:    dir,
		edge:   edge,
		cfg:    ncfg,
		fs:     fs,
		log:    ncfg.Logger,
		stats:  control.NewStats(),
		probes: control.NewDebugProbes(),
	}, nil
}

func (p *Pin) finishControl() {
	control.RegisterPlatformProbes(p.probes)
	p.ctrl = adapters.NewControlAdapter(p.id, map[string]any{
		"line":                uint16(p.id),
		"direction":           p.dir.String(),
		"edge":                p.edge.String(),
		"discipline":          p.cfg.Discipline.String(),
		"ring_capacity":       p.cfg.RingCapacity,
		"sysfs_root":          p.fs.Root,
		"lock_watcher_thread": p.cfg.LockWatcherThread,
		"watcher_cpu":         p.cfg.WatcherCPU,
	}, p.stats, p.probes)
}

// ID returns the line number.
func (p *Pin) ID() api.LineID { return p.id }

// Direction returns the configured direction.
func (p *Pin) Direction() api.Direction { return p.dir }

// Edge returns the subscribed edge, EdgeNone for plain pins.
func (p *Pin) Edge() api.Edge { return p.edge }

// SetValue drives an output line.
func (p *Pin) SetValue(v api.Value) error {
	if p.dir != api.Out {
		return api.NewError(api.ErrCodeConfig, p.id, "write value", api.ErrNotOutput)
	}
	if err := p.fs.WriteValue(p.id, v); err != nil {
		return api.NewError(api.ErrCodeIO, p.id, "write value", err)
	}
	return nil
}

// GetValue samples the current level with a one-shot read, independent of
// the detection loop's descriptor.
func (p *Pin) GetValue() (api.Value, error) {
	v, err := p.fs.ReadValue(p.id)
	if err != nil {
		return api.Low, api.NewError(api.ErrCodeIO, p.id, "read value", err)
	}
	return v, nil
}

// Err reports the fatal error that stopped the detection loop, if any.
func (p *Pin) Err() error {
	if p.watcher == nil {
		return nil
	}
	return p.watcher.Err()
}

// Control exposes configuration and counters.
func (p *Pin) Control() api.Control { return p.ctrl }

// Close tears the handle down: latch shutdown, wake the dispatcher, hang
// up the detector, join both loops, release descriptors, unexport. An
// unexport failure is logged and swallowed; the handle is gone either
// way. Close is idempotent and must not be called from the event
// callback.
func (p *Pin) Close() error {
	p.closeOnce.Do(func() {
		if p.cancel != nil {
			p.cancel.Set()
			p.queue.Wake()
			p.cancel.Hangup()
			<-p.dispDone
			<-p.watchDone
			p.cancel.Close()
			p.line.Close()
		}
		if err := p.fs.Release(p.id); err != nil {
			p.log.Warn("unexport failed; line stays claimed until released externally",
				zap.Uint16("line", uint16(p.id)),
				zap.Error(err))
		}
	})
	return nil
}

// Shutdown implements api.GracefulShutdown.
func (p *Pin) Shutdown() error { return p.Close() }
