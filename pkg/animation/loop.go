package animation

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/go-drift/accordion/pkg/errors"
)

// ErrLoopStopped is reported when a task is posted to a loop that has exited.
var ErrLoopStopped = stderrors.New("dispatch loop stopped")

// Loop runs posted tasks one at a time on the goroutine that calls Run.
// It plays the role of the UI thread: every state mutation of a transition
// happens inside a task.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop returns a loop whose queue holds up to buffer pending tasks.
func NewLoop(buffer int) *Loop {
	if buffer < 0 {
		buffer = 0
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It blocks while the queue is full and returns false if the
// loop has stopped, reporting the dropped task.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		errors.Report(&errors.Error{Op: "animation.Loop.Post", Kind: errors.KindScheduler, Err: ErrLoopStopped})
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		errors.Report(&errors.Error{Op: "animation.Loop.Post", Kind: errors.KindScheduler, Err: ErrLoopStopped})
		return false
	}
}

// Run executes tasks until ctx is done. A panicking task is reported through
// the errors package and the loop keeps going.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			l.run(fn)
		}
	}
}

func (l *Loop) run(fn func()) {
	defer errors.Recover("animation.Loop")
	fn()
}

// Do posts fn and waits until it has run or ctx is done. A panic in fn is
// reported like any other task and returned as a *errors.PanicError.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	var panicked error
	if !l.Post(func() {
		defer close(finished)
		defer errors.RecoverWithCallback("animation.Loop.Do", func(r any) {
			panicked = &errors.PanicError{Op: "animation.Loop.Do", Value: r, Timestamp: time.Now()}
		})
		fn()
	}) {
		return ErrLoopStopped
	}
	select {
	case <-finished:
		return panicked
	case <-ctx.Done():
		return ctx.Err()
	}
}
