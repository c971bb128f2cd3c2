// Package debounce collapses rapid successive calls into a single trailing call.
package debounce

import (
	"sync"
	"time"

	"github.com/csdept/deptsite-api/pkg/clock"
)

// Debouncer runs the most recently triggered function once the input has been
// quiet for the configured duration.
type Debouncer struct {
	mu       sync.Mutex
	clock    clock.Clock
	timer    clock.Timer
	pending  func()
	duration time.Duration
}

// New creates a debouncer on the given clock.
func New(c clock.Clock, duration time.Duration) *Debouncer {
	return &Debouncer{
		clock:    c,
		duration: duration,
	}
}

// Trigger schedules fn to run after the debounce duration. A pending call is
// cancelled and replaced, so only the latest fn survives.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.pending = fn
	var timer clock.Timer
	timer = d.clock.AfterFunc(d.duration, func() {
		d.mu.Lock()
		if d.timer != timer {
			d.mu.Unlock()
			return
		}
		run := d.pending
		d.timer = nil
		d.pending = nil
		d.mu.Unlock()

		if run != nil {
			run()
		}
	})
	d.timer = timer
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// Flush runs a pending call immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	run := d.pending
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.mu.Unlock()

	if run != nil {
		run()
	}
}

// Pending reports whether a call is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
