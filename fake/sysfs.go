// Package fake
// Author: momentics <momentics@gmail.com>
//
// Simulated GPIO class tree on a plain filesystem. A scanner goroutine
// plays the kernel: it consumes ids appended to the export/unexport
// command files, materializes or removes line directories, and keeps
// per-line counters for assertions.

package fake

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/momentics/hioload-gpio/api"
)

// Sysfs is one simulated GPIO class directory.
//
// Command files are append-only streams; the scanner tracks a consumed
// offset per file instead of truncating, so a command appended mid-scan
// is never lost. Line directories are staged fully populated and then
// renamed into place, which makes a claim's directory appear atomically
// the way udev-settled sysfs entries do.
type Sysfs struct {
	Root string

	every time.Duration
	done  chan struct{}
	wg    sync.WaitGroup

	mu       sync.Mutex
	expOff   int64
	relOff   int64
	exports  map[api.LineID]int
	releases map[api.LineID]int
	omit     map[string]bool
}

// NewSysfs builds an empty simulated tree under root. Call Start to begin
// applying commands.
func NewSysfs(root string) (*Sysfs, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	for _, name := range []string{"export", "unexport"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0o644); err != nil {
			return nil, err
		}
	}
	return &Sysfs{
		Root:     root,
		every:    time.Millisecond,
		done:     make(chan struct{}),
		exports:  make(map[api.LineID]int),
		releases: make(map[api.LineID]int),
		omit:     make(map[string]bool),
	}, nil
}

// AddChip materializes a controller covering [base, base+count).
func (s *Sysfs) AddChip(base, count uint32) error {
	dir := filepath.Join(s.Root, fmt.Sprintf("gpiochip%d", base))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	files := map[string]string{
		"base":  fmt.Sprintf("%d\n", base),
		"ngpio": fmt.Sprintf("%d\n", count),
		"label": "gpio-fake\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// OmitAttr drops one attribute file from every line directory staged from
// now on. Fault injection for partial-construction paths.
func (s *Sysfs) OmitAttr(name string) {
	s.mu.Lock()
	s.omit[name] = true
	s.mu.Unlock()
}

// Start launches the scanner.
func (s *Sysfs) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.every)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				s.scan()
				return
			case <-ticker.C:
				s.scan()
			}
		}
	}()
}

// Stop runs one final scan and joins the scanner.
func (s *Sysfs) Stop() {
	close(s.done)
	s.wg.Wait()
}

// WaitIdle blocks until every appended command has been applied.
func (s *Sysfs) WaitIdle(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		s.mu.Lock()
		idle := s.sizeOf("export") == s.expOff && s.sizeOf("unexport") == s.relOff
		s.mu.Unlock()
		if idle {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("fake sysfs: commands still pending after %v", timeout)
		}
		time.Sleep(time.Millisecond)
	}
}

// Exports reports how many export commands were applied for id.
func (s *Sysfs) Exports(id api.LineID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exports[id]
}

// Releases reports how many unexport commands were applied for id.
func (s *Sysfs) Releases(id api.LineID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releases[id]
}

// Claimed reports whether the line directory currently exists.
func (s *Sysfs) Claimed(id api.LineID) bool {
	_, err := os.Stat(s.linePath(id))
	return err == nil
}

// LevelOf reads the stored level of a claimed line.
func (s *Sysfs) LevelOf(id api.LineID) (api.Value, error) {
	data, err := os.ReadFile(filepath.Join(s.linePath(id), "value"))
	if err != nil {
		return api.Low, err
	}
	if len(data) == 0 {
		return api.Low, fmt.Errorf("fake sysfs: empty value file for line %d", id)
	}
	return api.ParseValue(data[0])
}

// SetLevel stores a new level on a claimed line, standing in for an
// external driver. It does not generate wait events; use Line for that.
func (s *Sysfs) SetLevel(id api.LineID, v api.Value) error {
	return os.WriteFile(filepath.Join(s.linePath(id), "value"), []byte(v.String()+"\n"), 0o644)
}

// AttrOf reads a raw attribute of a claimed line, trailing space trimmed.
func (s *Sysfs) AttrOf(id api.LineID, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.linePath(id), name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Sysfs) linePath(id api.LineID) string {
	return filepath.Join(s.Root, fmt.Sprintf("gpio%d", id))
}

func (s *Sysfs) sizeOf(name string) int64 {
	fi, err := os.Stat(filepath.Join(s.Root, name))
	if err != nil {
		return 0
	}
	return fi.Size()
}

func (s *Sysfs) scan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expOff = s.consume("export", s.expOff, s.applyExport)
	s.relOff = s.consume("unexport", s.relOff, s.applyRelease)
}

func (s *Sysfs) consume(name string, off int64, apply func(api.LineID)) int64 {
	f, err := os.Open(filepath.Join(s.Root, name))
	if err != nil {
		return off
	}
	defer f.Close()
	if _, err := f.Seek(off, io.SeekStart); err != nil {
		return off
	}
	data, err := io.ReadAll(f)
	if err != nil || len(data) == 0 {
		return off
	}
	for _, tok := range strings.Fields(string(data)) {
		n, err := strconv.ParseUint(tok, 10, 16)
		if err != nil {
			continue
		}
		apply(api.LineID(n))
	}
	return off + int64(len(data))
}

func (s *Sysfs) applyExport(id api.LineID) {
	s.exports[id]++
	dir := s.linePath(id)
	if _, err := os.Stat(dir); err == nil {
		return // already exported; the kernel would refuse the write
	}
	stage := filepath.Join(s.Root, fmt.Sprintf(".gpio%d.staging", id))
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return
	}
	attrs := map[string]string{
		"direction":  "in\n",
		"value":      "0\n",
		"edge":       "none\n",
		"active_low": "0\n",
	}
	for attr, content := range attrs {
		if s.omit[attr] {
			continue
		}
		if err := os.WriteFile(filepath.Join(stage, attr), []byte(content), 0o644); err != nil {
			os.RemoveAll(stage)
			return
		}
	}
	os.Rename(stage, dir)
}

func (s *Sysfs) applyRelease(id api.LineID) {
	s.releases[id]++
	os.RemoveAll(s.linePath(id))
}
