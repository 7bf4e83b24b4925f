package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the quiet period between the last trigger
// and the callback firing.
const DefaultDebounceDuration = 500 * time.Millisecond

// Debouncer coalesces bursts of triggers into a single callback. Each
// Trigger replaces the previously pending callback, so the callback runs
// once the triggers go quiet for the configured duration.
type Debouncer struct {
	d time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{d: d}
}

// Trigger schedules fn, canceling any previously pending callback.
func (db *Debouncer) Trigger(fn func()) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.timer != nil {
		db.timer.Stop()
	}
	db.timer = time.AfterFunc(db.d, fn)
}

// Cancel drops the pending callback, if any.
func (db *Debouncer) Cancel() {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}

// Duration returns the configured quiet period.
func (db *Debouncer) Duration() time.Duration {
	return db.d
}
