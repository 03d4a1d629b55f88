// Package collapse animates an element between hidden and shown by
// transitioning its height.
//
// CSS cannot animate a height of auto, so a [Collapse] measures the content
// while a transition runs and pins the container to an explicit pixel
// height, then releases it back to auto once the phase settles:
//
//	status    class            height
//	exited    collapse         auto
//	entering  collapsing       measured
//	entered   collapse show    auto
//	exiting   collapsing       measured, reflow, then 0
//
// Phase sequencing is delegated to a [transition.Driver]; measurement and
// timers are supplied by the host through [Measurer] and
// [animation.Scheduler], so the component runs the same in a browser bridge,
// a server-side renderer or a test.
//
// # Basic Usage
//
//	c, err := collapse.New(collapse.Config{
//	    Attributes: collapse.Attributes{ClassName: "accordion-collapse"},
//	}, false, scheduler, measure.Text{Width: 320})
//	if err != nil {
//	    return err
//	}
//	c.SetContentHTML("<p>Answer</p>")
//	c.AddListener(func(f collapse.Frame) { repaint(c.Render()) })
//	c.Mount()
//	c.SetActive(true)
package collapse

import (
	stderrors "errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/go-drift/accordion/pkg/animation"
	"github.com/go-drift/accordion/pkg/classnames"
	"github.com/go-drift/accordion/pkg/errors"
	"github.com/go-drift/accordion/pkg/transition"
)

// Phase class names.
const (
	ClassCollapse   = "collapse"
	ClassShow       = "collapse show"
	ClassCollapsing = "collapsing"
	// BodyClass marks the inner element wrapping the caller's content.
	BodyClass = "collapse-body"
)

// Measurer reports the natural rendered height of an element, in pixels.
type Measurer interface {
	Measure(node *html.Node) float64
}

// Reflower is implemented by measurers that can force a pending layout to
// be applied. Collapse calls it before pinning the height to zero on exit.
type Reflower interface {
	Reflow(node *html.Node)
}

// TransitionClass returns the class for a phase.
func TransitionClass(s transition.Status) string {
	switch s {
	case transition.Entering, transition.Exiting:
		return ClassCollapsing
	case transition.Entered:
		return ClassShow
	default:
		return ClassCollapse
	}
}

// Frame is a snapshot of what a Collapse renders.
type Frame struct {
	Status transition.Status
	Class  string
	// Height is the inline height in pixels, valid when HasHeight is set.
	// Without it the container flows at its natural height.
	Height    float64
	HasHeight bool
}

// HeightString renders the height as CSS, or "auto" when unset.
func (f Frame) HeightString() string {
	if !f.HasHeight {
		return "auto"
	}
	return formatPx(f.Height)
}

func (f Frame) String() string {
	return fmt.Sprintf("(%s, %s)", f.Class, f.HeightString())
}

// Collapse is the collapse/expand transition of an accordion body.
//
// A Collapse is not safe for concurrent use; call it from the goroutine that
// runs the scheduler's callbacks.
type Collapse struct {
	cfg      Config
	driver   *transition.Driver[*html.Node]
	measurer Measurer
	logger   *log.Logger

	node *html.Node
	body *html.Node

	height    float64
	hasHeight bool
	// enterFrom and exitFrom are the on-screen heights the current tween
	// starts from.
	enterFrom  float64
	exitFrom   float64
	phaseStart time.Time

	// listeners run in registration order; unsubscribed slots are nil.
	listeners []func(Frame)
	disposed  bool
}

// New creates a collapse that starts shown when active is true. The
// scheduler times the animated phases and m measures the content.
func New(cfg Config, active bool, sched animation.Scheduler, m Measurer) (*Collapse, error) {
	err := cfg.Validate()
	if sched == nil {
		err = multierr.Append(err, stderrors.New("scheduler is required"))
	}
	if m == nil {
		err = multierr.Append(err, stderrors.New("measurer is required"))
	}
	if err != nil {
		return nil, errors.New("collapse.New", errors.KindConfig, err)
	}
	cfg = cfg.withDefaults()

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	c := &Collapse{
		cfg:      cfg,
		measurer: m,
		logger:   logger,
	}
	c.node = &html.Node{
		Type:     html.ElementNode,
		Data:     cfg.Attributes.Tag,
		DataAtom: atom.Lookup([]byte(cfg.Attributes.Tag)),
	}
	c.body = &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: BodyClass}},
	}
	c.node.AppendChild(c.body)

	tc := cfg.Transition
	c.driver = transition.NewDriver(transition.Config{
		In:            active,
		Appear:        tc.Appear,
		DisableEnter:  tc.DisableEnter,
		DisableExit:   tc.DisableExit,
		MountOnEnter:  tc.MountOnEnter,
		UnmountOnExit: tc.UnmountOnExit,
		Timeouts:      transition.Uniform(tc.Duration),
		Logger:        cfg.Logger,
	}, c.node, transition.Chain[*html.Node](hooks{c}, tc.Hooks), sched)
	c.driver.AddStatusListener(c.onStatus)

	c.phaseStart = cfg.Clock.Now()
	c.sync()
	return c, nil
}

// Mount attaches the collapse. With Appear set on an active collapse this
// starts the initial enter transition.
func (c *Collapse) Mount() {
	c.driver.Mount()
}

// SetActive sets the target visibility. Setting the current value again
// does nothing.
func (c *Collapse) SetActive(active bool) {
	c.driver.SetIn(active)
}

// Toggle flips the target visibility.
func (c *Collapse) Toggle() {
	c.SetActive(!c.Active())
}

// Active returns the target visibility.
func (c *Collapse) Active() bool {
	return c.driver.In()
}

// Status returns the current phase.
func (c *Collapse) Status() transition.Status {
	return c.driver.Status()
}

// Duration returns the length of the animated phases.
func (c *Collapse) Duration() time.Duration {
	return c.cfg.Transition.Duration
}

// Height returns the inline height in pixels. ok is false when no height is
// pinned and the container flows naturally.
func (c *Collapse) Height() (px float64, ok bool) {
	return c.height, c.hasHeight
}

// ClassName returns the container's class list: the caller's classes
// followed by the phase class.
func (c *Collapse) ClassName() string {
	a := c.cfg.Attributes
	var extra string
	for _, attr := range a.Extra {
		if strings.EqualFold(attr.Key, "class") {
			extra = classnames.Join(extra, attr.Val)
		}
	}
	return classnames.Join(a.ClassName, extra, TransitionClass(c.Status()))
}

// Style returns the container's inline style declarations.
func (c *Collapse) Style() string {
	var decls []string
	for _, attr := range c.cfg.Attributes.Extra {
		if strings.EqualFold(attr.Key, "style") {
			if s := strings.Trim(strings.TrimSpace(attr.Val), ";"); s != "" {
				decls = append(decls, s)
			}
		}
	}
	style := c.cfg.Attributes.Style
	for _, k := range slices.Sorted(maps.Keys(style)) {
		if c.hasHeight && strings.EqualFold(k, "height") {
			continue
		}
		decls = append(decls, k+": "+style[k])
	}
	if c.hasHeight {
		decls = append(decls, "height: "+formatPx(c.height))
	}
	return strings.Join(decls, "; ")
}

// Frame returns a snapshot of the rendered state.
func (c *Collapse) Frame() Frame {
	return Frame{
		Status:    c.Status(),
		Class:     c.ClassName(),
		Height:    c.height,
		HasHeight: c.hasHeight,
	}
}

// VisualHeight returns the on-screen height at now for hosts that animate
// the height themselves instead of relying on CSS transitions. Animated
// phases follow the configured easing over Duration, starting from the
// height on screen when the phase began, so reversing a transition midway
// does not jump.
func (c *Collapse) VisualHeight(now time.Time) float64 {
	elapsed := now.Sub(c.phaseStart)
	switch c.Status() {
	case transition.Entering:
		return animation.TweenFloat64(c.enterFrom, c.height).At(elapsed, c.Duration(), c.cfg.Transition.Easing)
	case transition.Exiting:
		return animation.TweenFloat64(c.exitFrom, 0).At(elapsed, c.Duration(), c.cfg.Transition.Easing)
	case transition.Entered:
		return c.measurer.Measure(c.node)
	default:
		return 0
	}
}

// AddListener adds a callback that receives a frame after every phase
// change. Returns an unsubscribe function. A panicking listener is reported
// to the errors handler and does not stop the transition.
func (c *Collapse) AddListener(fn func(Frame)) func() {
	if c.disposed {
		return func() {}
	}
	i := len(c.listeners)
	c.listeners = append(c.listeners, fn)
	return func() {
		if i < len(c.listeners) {
			c.listeners[i] = nil
		}
	}
}

// Dispose cancels any pending phase timer and drops listeners.
func (c *Collapse) Dispose() {
	c.driver.Dispose()
	c.disposed = true
	c.listeners = nil
}

func (c *Collapse) onStatus(transition.Status) {
	c.phaseStart = c.cfg.Clock.Now()
	c.sync()
	frame := c.Frame()
	c.logger.Debug("collapse", "id", c.cfg.Attributes.ID, "status", frame.Status, "class", frame.Class, "height", frame.HeightString())
	for _, listener := range c.listeners {
		if listener != nil {
			notify(listener, frame)
		}
	}
}

// notify calls a listener, reporting a panic instead of letting it unwind
// into the transition driver mid-phase.
func notify(fn func(Frame), f Frame) {
	defer errors.Recover("collapse.listener")
	fn(f)
}

func (c *Collapse) setHeight(px float64) {
	c.height, c.hasHeight = px, true
	c.sync()
}

func (c *Collapse) clearHeight() {
	c.height, c.hasHeight = 0, false
	c.sync()
}

// reflow makes the host apply pending layout so the height pinned on exit
// is the starting point of the shrink.
func (c *Collapse) reflow(node *html.Node) {
	if r, ok := c.measurer.(Reflower); ok {
		r.Reflow(node)
		return
	}
	c.measurer.Measure(node)
}

// hooks keeps the measured height in step with the phase.
type hooks struct {
	c *Collapse
}

// OnEnter runs before the status leaves the previous phase, so the visual
// height is still that phase's.
func (h hooks) OnEnter(*html.Node, bool) {
	h.c.enterFrom = h.c.VisualHeight(h.c.cfg.Clock.Now())
}

func (h hooks) OnEntering(node *html.Node, _ bool) {
	h.c.setHeight(h.c.measurer.Measure(node))
}

func (h hooks) OnEntered(*html.Node, bool) {
	h.c.clearHeight()
}

func (h hooks) OnExit(node *html.Node) {
	px := h.c.measurer.Measure(node)
	h.c.exitFrom = px
	if h.c.Status() == transition.Entering {
		h.c.exitFrom = h.c.VisualHeight(h.c.cfg.Clock.Now())
	}
	h.c.setHeight(px)
}

func (h hooks) OnExiting(node *html.Node) {
	h.c.reflow(node)
	h.c.setHeight(0)
}

func (h hooks) OnExited(*html.Node) {
	h.c.clearHeight()
}

func formatPx(px float64) string {
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}
