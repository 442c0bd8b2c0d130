package view

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid search-input changes into a single trailing
// update: fn fires with the most recent value once Trigger has been quiet for
// the whole window.
type Debouncer struct {
	window time.Duration
	fn     func(string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	stopped bool
}

func NewDebouncer(window time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Trigger records value and restarts the quiescence window.
func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = value
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.timer = nil
	d.mu.Unlock()

	// fn runs outside the lock so it may Trigger again.
	d.fn(value)
}

// Stop cancels any pending fire. Further Triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
