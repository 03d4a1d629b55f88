// Package animation provides the host-runtime timing primitives that drive
// transitions: clocks, schedulers for single delayed callbacks, a
// single-threaded dispatch loop, and easing curves.
//
// # Schedulers
//
// A [Scheduler] arms one delayed callback and hands back a [Timer] that can
// cancel it. Two implementations are provided:
//
//   - [TimerScheduler]: wall-clock timers whose callbacks are posted to a
//     [Loop], so they run on the same goroutine as every other UI mutation.
//
//   - [FrameScheduler]: timers measured against a [Clock] and fired by
//     [FrameScheduler.Step]. Combined with a [ManualClock] this gives
//     deterministic replays and tests.
//
// # Basic Usage
//
//	loop := animation.NewLoop(64)
//	sched := animation.NewTimerScheduler(loop)
//	go loop.Run(ctx)
//
//	loop.Post(func() {
//	    sched.Schedule(350*time.Millisecond, func() {
//	        // runs on the loop goroutine
//	    })
//	})
package animation

import (
	"sync/atomic"
	"time"
)

// Scheduler schedules a single delayed callback.
type Scheduler interface {
	// Schedule arranges for fn to run once after delay.
	Schedule(delay time.Duration, fn func()) Timer
}

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// TimerScheduler is a Scheduler backed by time.AfterFunc. Callbacks are
// posted to a Loop rather than run on the timer goroutine.
type TimerScheduler struct {
	loop *Loop
}

// NewTimerScheduler returns a scheduler dispatching onto loop.
func NewTimerScheduler(loop *Loop) *TimerScheduler {
	return &TimerScheduler{loop: loop}
}

// Schedule implements Scheduler.
func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) Timer {
	t := &wallTimer{}
	t.timer = time.AfterFunc(delay, func() {
		s.loop.Post(func() {
			// Stop may have been called on the loop between expiry and dispatch.
			if t.done.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return t
}

type wallTimer struct {
	timer *time.Timer
	done  atomic.Bool
}

func (t *wallTimer) Stop() bool {
	t.timer.Stop()
	return t.done.CompareAndSwap(false, true)
}
