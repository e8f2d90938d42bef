// Package debounce coalesces bursts of events into a single callback.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays a callback until its trigger has been quiet for the
// configured delay. Menus fire a change event per registration; a widget
// re-materializing on each one would recompute once per item during bulk
// setup, so it routes the events through a Debouncer instead.
type Debouncer struct {
	delay    time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
}

// New creates a debouncer with the given settle delay.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules callback to run after the delay, replacing any pending
// callback. The callback runs on the timer goroutine.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.callback = callback
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		cb := d.callback
		d.callback = nil
		d.timer = nil
		d.mu.Unlock()

		if cb != nil {
			cb()
		}
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}

// Flush runs any pending callback immediately instead of waiting out the
// delay.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	cb := d.callback
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
	d.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// Pending reports whether a callback is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.timer != nil
}
