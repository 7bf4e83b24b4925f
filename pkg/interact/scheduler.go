// Package interact implements the pointer-driven behaviors of the
// visualizer: hover tooltips with hide hysteresis, node dragging, and
// pan/zoom of the viewport transform. Everything here is synchronous;
// deferred work goes through a Scheduler so hosts keep a single event
// loop and tests control time.
package interact

import "time"

// Handle cancels a pending scheduled call.
type Handle interface {
	// Stop cancels the call and reports whether it was still pending.
	Stop() bool
}

// Scheduler defers a function call. The production scheduler uses the
// wall clock; tests substitute a manual one so timing is deterministic.
// Wall-clock callbacks fire on a timer goroutine, so hosts with an event
// loop should wrap fn to re-post it onto that loop.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

type wallClock struct{}

type timerHandle struct{ t *time.Timer }

func (h timerHandle) Stop() bool { return h.t.Stop() }

func (wallClock) After(d time.Duration, fn func()) Handle {
	return timerHandle{time.AfterFunc(d, fn)}
}

// WallClock returns the timer-backed scheduler.
func WallClock() Scheduler { return wallClock{} }
