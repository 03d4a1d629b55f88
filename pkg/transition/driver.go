// Package transition sequences an element through mount, enter and exit
// phases over time.
//
// A [Driver] is told the desired visibility with SetIn and walks the
// [Status] machine one phase at a time, invoking [Hooks] at each step and
// arming a single timer through an [animation.Scheduler] for the animated
// phases. It never measures or styles anything itself; owners such as the
// collapse component react to the hooks.
//
// # Basic Usage
//
//	d := transition.NewDriver(transition.Config{
//	    Timeouts: transition.Uniform(350 * time.Millisecond),
//	}, node, hooks, scheduler)
//	d.AddStatusListener(func(s transition.Status) { rerender() })
//	d.Mount()
//	d.SetIn(true)  // exited -> entering, entered after 350ms
//
// All methods must be called from the goroutine that runs scheduled
// callbacks, typically an [animation.Loop].
package transition

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/go-drift/accordion/pkg/animation"
)

// Timeouts holds the duration of each animated phase.
type Timeouts struct {
	// Appear is used for the enter transition run by Mount. Zero means Enter.
	Appear time.Duration
	// Enter is the duration of the entering phase.
	Enter time.Duration
	// Exit is the duration of the exiting phase.
	Exit time.Duration
}

// Uniform returns Timeouts using d for every phase.
func Uniform(d time.Duration) Timeouts {
	return Timeouts{Appear: d, Enter: d, Exit: d}
}

func (t Timeouts) appear() time.Duration {
	if t.Appear > 0 {
		return t.Appear
	}
	return t.Enter
}

// Config controls how a Driver moves between phases.
type Config struct {
	// In is the initial desired visibility.
	In bool
	// Appear runs the enter transition on Mount when In is already true.
	// Without it the driver starts Entered.
	Appear bool
	// DisableEnter jumps straight to Entered when shown.
	DisableEnter bool
	// DisableExit jumps straight to Exited when hidden.
	DisableExit bool
	// MountOnEnter keeps the element Unmounted until first shown.
	MountOnEnter bool
	// UnmountOnExit returns the element to Unmounted after it exits.
	UnmountOnExit bool
	// Timeouts are the phase durations.
	Timeouts Timeouts
	// Logger receives debug records for each phase change. Nil discards.
	Logger *log.Logger
}

// Driver walks an element through the Status machine.
type Driver[N any] struct {
	cfg    Config
	node   N
	hooks  Hooks[N]
	sched  animation.Scheduler
	logger *log.Logger

	in            bool
	status        Status
	pendingAppear bool
	mounted       bool
	disposed      bool

	timer animation.Timer
	// gen increases whenever a new transition starts; steps belonging to an
	// older generation are abandoned.
	gen uint64

	// listeners run in registration order; unsubscribed slots are nil.
	listeners []func(Status)
}

// NewDriver creates a driver for node. hooks may be nil.
func NewDriver[N any](cfg Config, node N, hooks Hooks[N], sched animation.Scheduler) *Driver[N] {
	if hooks == nil {
		hooks = HookFuncs[N]{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	d := &Driver[N]{
		cfg:    cfg,
		node:   node,
		hooks:  hooks,
		sched:  sched,
		logger: logger,
		in:     cfg.In,
	}
	switch {
	case cfg.In && cfg.Appear:
		d.status = Exited
		d.pendingAppear = true
	case cfg.In:
		d.status = Entered
	case cfg.MountOnEnter || cfg.UnmountOnExit:
		d.status = Unmounted
	default:
		d.status = Exited
	}
	return d
}

// Status returns the current phase.
func (d *Driver[N]) Status() Status {
	return d.status
}

// In returns the desired visibility last set.
func (d *Driver[N]) In() bool {
	return d.in
}

// Node returns the element the driver was built with.
func (d *Driver[N]) Node() N {
	return d.node
}

// IsAnimating returns true while a phase timer is armed.
func (d *Driver[N]) IsAnimating() bool {
	return d.timer != nil
}

// Mount marks the element as attached. When the driver was created In with
// Appear set, the enter transition starts here with appearing true.
// Calling Mount more than once has no effect.
func (d *Driver[N]) Mount() {
	if d.mounted || d.disposed {
		return
	}
	d.mounted = true
	if d.pendingAppear {
		d.pendingAppear = false
		d.performEnter(true)
	}
}

// SetIn updates the desired visibility. Showing an element that is not
// already entering or entered starts the enter transition; hiding one that
// is entering or entered starts the exit transition. Any pending phase timer
// is cancelled first. Every other call is a no-op.
func (d *Driver[N]) SetIn(in bool) {
	if d.disposed {
		return
	}
	d.in = in
	d.pendingAppear = false
	if in {
		if d.status.IsShown() {
			return
		}
		d.cancel()
		if d.status == Unmounted {
			d.setStatus(Exited)
		}
		d.performEnter(false)
		return
	}
	if !d.status.IsShown() {
		return
	}
	d.cancel()
	d.performExit()
}

func (d *Driver[N]) performEnter(appearing bool) {
	gen := d.begin()
	if !appearing && d.cfg.DisableEnter {
		from := d.status
		d.status = Entered
		d.hooks.OnEntered(d.node, false)
		if !d.stale(gen) {
			d.announce(from)
		}
		return
	}

	timeout := d.cfg.Timeouts.Enter
	if appearing {
		timeout = d.cfg.Timeouts.appear()
	}

	d.hooks.OnEnter(d.node, appearing)
	if d.stale(gen) {
		return
	}
	from := d.status
	d.status = Entering
	d.hooks.OnEntering(d.node, appearing)
	if d.stale(gen) {
		return
	}
	d.announce(from)
	// A listener may have started another transition.
	if d.stale(gen) {
		return
	}
	d.arm(gen, timeout, func() {
		d.status = Entered
		d.hooks.OnEntered(d.node, appearing)
		if d.stale(gen) {
			return
		}
		d.announce(Entering)
	})
}

func (d *Driver[N]) performExit() {
	gen := d.begin()
	if d.cfg.DisableExit {
		from := d.status
		d.status = Exited
		d.hooks.OnExited(d.node)
		if d.stale(gen) {
			return
		}
		d.announce(from)
		d.afterExited(gen)
		return
	}

	d.hooks.OnExit(d.node)
	if d.stale(gen) {
		return
	}
	from := d.status
	d.status = Exiting
	d.hooks.OnExiting(d.node)
	if d.stale(gen) {
		return
	}
	d.announce(from)
	if d.stale(gen) {
		return
	}
	d.arm(gen, d.cfg.Timeouts.Exit, func() {
		d.status = Exited
		d.hooks.OnExited(d.node)
		if d.stale(gen) {
			return
		}
		d.announce(Exiting)
		d.afterExited(gen)
	})
}

func (d *Driver[N]) afterExited(gen uint64) {
	if d.stale(gen) || !d.cfg.UnmountOnExit {
		return
	}
	d.setStatus(Unmounted)
}

// begin starts a new generation, invalidating any steps still queued by a
// previous transition.
func (d *Driver[N]) begin() uint64 {
	d.gen++
	return d.gen
}

func (d *Driver[N]) stale(gen uint64) bool {
	return d.disposed || gen != d.gen
}

// arm replaces any armed timer, so at most one is ever in flight.
func (d *Driver[N]) arm(gen uint64, timeout time.Duration, fn func()) {
	d.cancel()
	d.timer = d.sched.Schedule(timeout, func() {
		if d.stale(gen) {
			return
		}
		d.timer = nil
		fn()
	})
}

func (d *Driver[N]) cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// setStatus moves to status and notifies listeners.
func (d *Driver[N]) setStatus(status Status) {
	if d.status == status {
		return
	}
	from := d.status
	d.status = status
	d.announce(from)
}

// announce notifies listeners that the current status was reached from from.
// Phase statuses are committed before their hook runs; listeners hear about
// them afterwards so they observe the state the hook left behind.
func (d *Driver[N]) announce(from Status) {
	d.logger.Debug("transition", "from", from, "status", d.status)
	for _, listener := range d.listeners {
		if listener != nil {
			listener(d.status)
		}
	}
}

// AddStatusListener adds a callback that fires after each phase change.
// Returns an unsubscribe function.
func (d *Driver[N]) AddStatusListener(fn func(Status)) func() {
	if d.disposed {
		return func() {}
	}
	i := len(d.listeners)
	d.listeners = append(d.listeners, fn)
	return func() {
		if i < len(d.listeners) {
			d.listeners[i] = nil
		}
	}
}

// Dispose cancels any pending phase timer and drops listeners. The driver
// ignores every later call.
func (d *Driver[N]) Dispose() {
	d.cancel()
	d.disposed = true
	d.listeners = nil
}
