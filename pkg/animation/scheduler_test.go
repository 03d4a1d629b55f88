package animation

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-drift/accordion/pkg/errors"
)

func TestFrameScheduler_FiresWhenDue(t *testing.T) {
	clk := NewManualClock()
	s := NewFrameScheduler(clk)

	var fired []string
	s.Schedule(100*time.Millisecond, func() { fired = append(fired, "b") })
	s.Schedule(50*time.Millisecond, func() { fired = append(fired, "a") })

	if n := s.Step(); n != 0 {
		t.Fatalf("Step before due fired %d timers", n)
	}

	clk.Advance(60 * time.Millisecond)
	if n := s.Step(); n != 1 {
		t.Fatalf("Step at 60ms fired %d timers, want 1", n)
	}

	clk.Advance(40 * time.Millisecond)
	s.Step()

	if len(fired) != 2 || fired[0] != "a" || fired[1] != "b" {
		t.Errorf("fired = %v, want [a b]", fired)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestFrameScheduler_SameDueKeepsOrder(t *testing.T) {
	clk := NewManualClock()
	s := NewFrameScheduler(clk)

	var fired []int
	for i := range 5 {
		s.Schedule(10*time.Millisecond, func() { fired = append(fired, i) })
	}
	clk.Advance(10 * time.Millisecond)
	s.Step()

	for i, v := range fired {
		if v != i {
			t.Fatalf("fired = %v, want scheduling order", fired)
		}
	}
}

func TestFrameScheduler_Stop(t *testing.T) {
	clk := NewManualClock()
	s := NewFrameScheduler(clk)

	ran := false
	timer := s.Schedule(10*time.Millisecond, func() { ran = true })
	if !timer.Stop() {
		t.Error("first Stop should report the callback was cancelled")
	}
	if timer.Stop() {
		t.Error("second Stop should report nothing to cancel")
	}

	clk.Advance(time.Second)
	s.Step()
	if ran {
		t.Error("stopped timer ran")
	}
}

func TestFrameScheduler_ChainedZeroDelay(t *testing.T) {
	clk := NewManualClock()
	s := NewFrameScheduler(clk)

	count := 0
	s.Schedule(0, func() {
		count++
		s.Schedule(0, func() { count++ })
	})
	if n := s.Step(); n != 2 {
		t.Errorf("Step fired %d, want 2", n)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestFrameScheduler_NextDue(t *testing.T) {
	clk := NewManualClock()
	s := NewFrameScheduler(clk)

	if _, ok := s.NextDue(); ok {
		t.Fatal("NextDue on empty scheduler should report false")
	}
	start := clk.Now()
	s.Schedule(300*time.Millisecond, func() {})
	s.Schedule(100*time.Millisecond, func() {})

	next, ok := s.NextDue()
	if !ok || !next.Equal(start.Add(100*time.Millisecond)) {
		t.Errorf("NextDue() = %v, %v; want %v", next, ok, start.Add(100*time.Millisecond))
	}
}

func TestTimerScheduler_RunsOnLoop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	loop := NewLoop(8)
	go loop.Run(ctx)
	s := NewTimerScheduler(loop)

	fired := make(chan struct{})
	if err := loop.Do(ctx, func() {
		s.Schedule(5*time.Millisecond, func() { close(fired) })
	}); err != nil {
		t.Fatalf("Do: %v", err)
	}

	select {
	case <-fired:
	case <-ctx.Done():
		t.Fatal("timer never fired")
	}
}

func TestTimerScheduler_StopPreventsCallback(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	loop := NewLoop(8)
	go loop.Run(ctx)
	s := NewTimerScheduler(loop)

	ran := make(chan struct{}, 1)
	var timer Timer
	loop.Do(ctx, func() {
		timer = s.Schedule(20*time.Millisecond, func() { ran <- struct{}{} })
	})
	var stopped bool
	loop.Do(ctx, func() { stopped = timer.Stop() })
	if !stopped {
		t.Fatal("Stop before expiry should report true")
	}

	select {
	case <-ran:
		t.Fatal("stopped timer ran")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestLoop_RecoversPanics(t *testing.T) {
	var captured *errors.PanicError
	old := errors.Handler()
	errors.SetHandler(&panicCapture{fn: func(p *errors.PanicError) { captured = p }})
	defer errors.SetHandler(old)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	loop := NewLoop(4)
	go loop.Run(ctx)

	loop.Post(func() { panic("hook failed") })
	ok := false
	if err := loop.Do(ctx, func() { ok = true }); err != nil {
		t.Fatalf("Do after panic: %v", err)
	}
	if !ok {
		t.Error("loop did not continue after a panicking task")
	}
	if captured == nil || captured.Op != "animation.Loop" {
		t.Errorf("captured = %+v, want panic reported for animation.Loop", captured)
	}
}

func TestLoop_DoReturnsPanic(t *testing.T) {
	var reported *errors.PanicError
	old := errors.Handler()
	errors.SetHandler(&panicCapture{fn: func(p *errors.PanicError) { reported = p }})
	defer errors.SetHandler(old)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	loop := NewLoop(1)
	go loop.Run(ctx)

	err := loop.Do(ctx, func() { panic("listener failed") })
	var pe *errors.PanicError
	if !stderrors.As(err, &pe) || pe.Value != "listener failed" {
		t.Fatalf("Do() = %v, want the panic returned", err)
	}
	if reported == nil || reported.Op != "animation.Loop.Do" {
		t.Errorf("reported = %+v, want panic reported for animation.Loop.Do", reported)
	}
	if err := loop.Do(ctx, func() {}); err != nil {
		t.Errorf("Do after panic = %v", err)
	}
}

func TestLoop_PostAfterStop(t *testing.T) {
	old := errors.Handler()
	errors.SetHandler(&panicCapture{})
	defer errors.SetHandler(old)

	ctx, cancel := context.WithCancel(context.Background())
	loop := NewLoop(0)
	done := make(chan error)
	go func() { done <- loop.Run(ctx) }()
	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if loop.Post(func() {}) {
		t.Error("Post after stop should return false")
	}
}

type panicCapture struct {
	fn func(*errors.PanicError)
}

func (p *panicCapture) HandleError(*errors.Error) {}

func (p *panicCapture) HandlePanic(err *errors.PanicError) {
	if p.fn != nil {
		p.fn(err)
	}
}
