package animation

import (
	"sort"
	"sync"
	"time"
)

// FrameScheduler is a Scheduler whose timers fire only when Step is called.
//
// Due times are measured against the scheduler's Clock, so pairing it with a
// [ManualClock] makes every transition replayable: advance the clock, then
// step.
type FrameScheduler struct {
	clock Clock

	mu      sync.Mutex
	pending map[*frameTimer]struct{}
	seq     uint64
}

// NewFrameScheduler creates a frame scheduler reading time from clock.
// A nil clock means system time.
func NewFrameScheduler(clock Clock) *FrameScheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FrameScheduler{
		clock:   clock,
		pending: make(map[*frameTimer]struct{}),
	}
}

type frameTimer struct {
	s   *FrameScheduler
	due time.Time
	seq uint64
	fn  func()
}

// Schedule implements Scheduler.
func (s *FrameScheduler) Schedule(delay time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &frameTimer{s: s, due: s.clock.Now().Add(delay), seq: s.seq, fn: fn}
	s.pending[t] = struct{}{}
	return t
}

func (t *frameTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, ok := t.s.pending[t]; !ok {
		return false
	}
	delete(t.s.pending, t)
	return true
}

// Step fires every timer that is due, earliest first, and returns how many
// ran. Timers armed by a callback that are already due fire in the same step.
func (s *FrameScheduler) Step() int {
	fired := 0
	for {
		t := s.popDue()
		if t == nil {
			return fired
		}
		t.fn()
		fired++
	}
}

func (s *FrameScheduler) popDue() *frameTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	due := make([]*frameTimer, 0, len(s.pending))
	for t := range s.pending {
		if !t.due.After(now) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	delete(s.pending, due[0])
	return due[0]
}

// Pending returns the number of armed timers.
func (s *FrameScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// NextDue returns the earliest due time among armed timers.
func (s *FrameScheduler) NextDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var next time.Time
	found := false
	for t := range s.pending {
		if !found || t.due.Before(next) {
			next = t.due
			found = true
		}
	}
	return next, found
}
