package testing

import (
	"time"

	"github.com/go-drift/accordion/pkg/animation"
)

// Harness pairs a manual clock with a frame scheduler reading it.
type Harness struct {
	Clock     *animation.ManualClock
	Scheduler *animation.FrameScheduler
}

// NewHarness returns a harness at the manual clock's epoch.
func NewHarness() *Harness {
	clk := animation.NewManualClock()
	return &Harness{
		Clock:     clk,
		Scheduler: animation.NewFrameScheduler(clk),
	}
}

// Advance moves time forward by d and fires every due timer.
// It returns the number of callbacks that ran.
func (h *Harness) Advance(d time.Duration) int {
	h.Clock.Advance(d)
	return h.Scheduler.Step()
}

// Settle advances time to each pending timer in turn until none remain or
// limit has elapsed. It returns false if timers are still pending.
func (h *Harness) Settle(limit time.Duration) bool {
	deadline := h.Clock.Now().Add(limit)
	for {
		next, ok := h.Scheduler.NextDue()
		if !ok {
			return true
		}
		if next.After(deadline) {
			return false
		}
		if wait := next.Sub(h.Clock.Now()); wait > 0 {
			h.Clock.Advance(wait)
		}
		h.Scheduler.Step()
	}
}

// Pending returns the number of armed timers.
func (h *Harness) Pending() int {
	return h.Scheduler.Pending()
}
