package scenario

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/go-drift/accordion/pkg/animation"
	"github.com/go-drift/accordion/pkg/collapse"
	"github.com/go-drift/accordion/pkg/measure"
)

// Event causes.
const (
	CauseMount = "mount"
	CauseStep  = "step"
	CauseTimer = "timer"
)

// Event is a frame the collapse rendered during a replay.
type Event struct {
	// At is the offset from the start of the replay.
	At    time.Duration
	Cause string
	Frame collapse.Frame
}

// Player replays a scenario against a collapse on a manual clock. Timers due
// at the same instant as a step fire before the step is applied.
type Player struct {
	s        *Scenario
	clock    *animation.ManualClock
	sched    *animation.FrameScheduler
	collapse *collapse.Collapse
	start    time.Time

	next   int
	cause  string
	events []Event
}

// NewCollapse builds the collapse s describes, timed by sched and stamped by
// clock, with its content set. It is not mounted yet.
func (s *Scenario) NewCollapse(sched animation.Scheduler, clock animation.Clock, logger *log.Logger) (*collapse.Collapse, error) {
	var easing animation.Curve
	if s.Easing != "" {
		c, err := animation.ParseCurve(s.Easing)
		if err != nil {
			return nil, err
		}
		easing = c
	}
	cfg := collapse.Config{
		Transition: collapse.TransitionConfig{
			Duration:      s.Duration.Std(),
			Appear:        s.Appear,
			DisableEnter:  s.DisableEnter,
			DisableExit:   s.DisableExit,
			MountOnEnter:  s.MountOnEnter,
			UnmountOnExit: s.UnmountOnExit,
			Easing:        easing,
		},
		Attributes: collapse.Attributes{
			Tag:       s.Tag,
			ID:        s.ID,
			ClassName: s.ClassName,
		},
		Logger: logger,
		Clock:  clock,
	}
	c, err := collapse.New(cfg, s.Active, sched, s.Content.measurer())
	if err != nil {
		return nil, err
	}
	switch {
	case s.Content.HTML != "":
		if err := c.SetContentHTML(s.Content.HTML); err != nil {
			return nil, err
		}
	case s.Content.Text != "":
		p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
		p.AppendChild(&html.Node{Type: html.TextNode, Data: s.Content.Text})
		c.SetContent(p)
	}
	return c, nil
}

// NewPlayer builds the collapse described by s on a manual clock and mounts
// it.
func NewPlayer(s *Scenario, logger *log.Logger) (*Player, error) {
	clock := animation.NewManualClock()
	sched := animation.NewFrameScheduler(clock)
	c, err := s.NewCollapse(sched, clock, logger)
	if err != nil {
		return nil, err
	}

	p := &Player{
		s:        s,
		clock:    clock,
		sched:    sched,
		collapse: c,
		start:    clock.Now(),
		cause:    CauseMount,
	}
	c.AddListener(p.record)
	p.record(c.Frame())
	c.Mount()
	return p, nil
}

func (c Content) measurer() collapse.Measurer {
	if c.Height != nil {
		return measure.Static(*c.Height)
	}
	return measure.Text{Width: c.Width, LineHeight: c.LineHeight}
}

func (p *Player) record(f collapse.Frame) {
	p.events = append(p.events, Event{At: p.Elapsed(), Cause: p.cause, Frame: f})
}

// Collapse returns the collapse being driven.
func (p *Player) Collapse() *collapse.Collapse {
	return p.collapse
}

// Elapsed returns the replay offset.
func (p *Player) Elapsed() time.Duration {
	return p.clock.Now().Sub(p.start)
}

// Events returns the frames recorded so far.
func (p *Player) Events() []Event {
	return p.events
}

// Done reports whether every step has been applied and no timers remain.
func (p *Player) Done() bool {
	return p.next >= len(p.s.Steps) && p.sched.Pending() == 0
}

// VisualHeight returns the on-screen height at the current offset.
func (p *Player) VisualHeight() float64 {
	return p.collapse.VisualHeight(p.clock.Now())
}

// RunUntil applies steps and fires timers in time order up to offset at,
// then leaves the clock there.
func (p *Player) RunUntil(ctx context.Context, at time.Duration) error {
	deadline := p.start.Add(at)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		due, hasTimer := p.sched.NextDue()
		hasStep := p.next < len(p.s.Steps)
		var stepAt time.Time
		if hasStep {
			stepAt = p.start.Add(p.s.Steps[p.next].At.Std())
		}

		switch {
		case hasTimer && !due.After(deadline) && (!hasStep || !due.After(stepAt)):
			p.advanceTo(due)
			p.cause = CauseTimer
			p.sched.Step()
		case hasStep && !stepAt.After(deadline):
			p.advanceTo(stepAt)
			p.cause = CauseStep
			p.collapse.SetActive(p.s.Steps[p.next].Active)
			p.next++
		default:
			p.advanceTo(deadline)
			return nil
		}
	}
}

// Run replays the whole scenario and lets the final transition settle.
func (p *Player) Run(ctx context.Context) error {
	for !p.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := p.Elapsed()
		if due, ok := p.sched.NextDue(); ok {
			target = due.Sub(p.start)
		} else if p.next < len(p.s.Steps) {
			target = p.s.Steps[p.next].At.Std()
		}
		if err := p.RunUntil(ctx, target); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) advanceTo(t time.Time) {
	if d := t.Sub(p.clock.Now()); d > 0 {
		p.clock.Advance(d)
	}
}
