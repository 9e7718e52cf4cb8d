package netclient

import (
	"sync"
	"time"
)

// Delays for the two debounced inputs: session notes autosave and the call
// sign lookup box.
const (
	NotesDebounce  = 1500 * time.Millisecond
	LookupDebounce = 300 * time.Millisecond
)

// Debouncer coalesces rapid triggers into one callback after a quiet period.
// Each Trigger cancels the pending callback and schedules a new one, so only
// the final value in a burst is ever delivered. Stop cancels any pending
// callback; the session screen calls it on navigation so a timer can never
// fire into a dismantled view.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, cancelling any pending call
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending callback, if any
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
