package ui

import (
	"time"

	"github.com/vanderheijden86/vitae/pkg/interact"
)

// frameScheduler is an interact.Scheduler driven by the TUI frame loop
// instead of the wall clock. Every pending callback fires inside Update,
// which keeps the visualizer strictly single-threaded: no timer
// goroutine ever touches it.
type frameScheduler struct {
	pending []*frameTimer
}

type frameTimer struct {
	remaining time.Duration
	fn        func()
	stopped   bool
}

func (t *frameTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func newFrameScheduler() *frameScheduler {
	return &frameScheduler{}
}

func (s *frameScheduler) After(d time.Duration, fn func()) interact.Handle {
	t := &frameTimer{remaining: d, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// advance moves frame time forward by d and fires every timer that came
// due, in the order they were scheduled.
func (s *frameScheduler) advance(d time.Duration) {
	var due []*frameTimer
	for _, t := range s.pending {
		if t.stopped {
			continue
		}
		t.remaining -= d
		if t.remaining <= 0 {
			due = append(due, t)
		}
	}

	kept := s.pending[:0]
	for _, t := range s.pending {
		if !t.stopped && t.remaining > 0 {
			kept = append(kept, t)
		}
	}
	s.pending = kept

	for _, t := range due {
		t.stopped = true
		t.fn()
	}
}
