package view

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of search-input changes into a single fetch.
// Each Trigger resets the one pending timer; only a timer that reaches
// expiry without being superseded fires the callback.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fn    func(query string)
}

// NewDebouncer creates a debouncer firing fn after delay of quiet.
func NewDebouncer(delay time.Duration, fn func(query string)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules fn for the query, canceling any pending schedule.
func (d *Debouncer) Trigger(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fn(query)
	})
}

// Stop cancels any pending fire.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
