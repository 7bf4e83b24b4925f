package testutil

import (
	"time"

	"github.com/vanderheijden86/vitae/pkg/interact"
)

// ManualScheduler is a deterministic interact.Scheduler: time only moves
// when Advance is called, and due callbacks fire synchronously inside it.
type ManualScheduler struct {
	now     time.Duration
	pending []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func NewManualScheduler() *ManualScheduler { return &ManualScheduler{} }

func (s *ManualScheduler) After(d time.Duration, fn func()) interact.Handle {
	t := &manualTimer{at: s.now + d, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves the clock forward and fires due timers in schedule order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.now += d
	for _, t := range s.pending {
		if !t.stopped && !t.fired && t.at <= s.now {
			t.fired = true
			t.fn()
		}
	}
	kept := s.pending[:0]
	for _, t := range s.pending {
		if !t.fired && !t.stopped {
			kept = append(kept, t)
		}
	}
	s.pending = kept
}

// Pending reports how many timers are still armed.
func (s *ManualScheduler) Pending() int {
	count := 0
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			count++
		}
	}
	return count
}
