package transition

// Hooks observes phase changes of a Driver. Every method receives the element
// the driver was built with. Only the enter methods receive appearing, which
// is true when the transition runs because the element mounted already in.
//
// Hooks are called synchronously on the driver's goroutine and are not
// recovered: a panic propagates to whoever called SetIn or fired the timer.
type Hooks[N any] interface {
	OnEnter(node N, appearing bool)
	OnEntering(node N, appearing bool)
	OnEntered(node N, appearing bool)
	OnExit(node N)
	OnExiting(node N)
	OnExited(node N)
}

// HookFuncs adapts optional functions to Hooks. Nil fields are skipped.
type HookFuncs[N any] struct {
	Enter    func(node N, appearing bool)
	Entering func(node N, appearing bool)
	Entered  func(node N, appearing bool)
	Exit     func(node N)
	Exiting  func(node N)
	Exited   func(node N)
}

func (h HookFuncs[N]) OnEnter(node N, appearing bool) {
	if h.Enter != nil {
		h.Enter(node, appearing)
	}
}

func (h HookFuncs[N]) OnEntering(node N, appearing bool) {
	if h.Entering != nil {
		h.Entering(node, appearing)
	}
}

func (h HookFuncs[N]) OnEntered(node N, appearing bool) {
	if h.Entered != nil {
		h.Entered(node, appearing)
	}
}

func (h HookFuncs[N]) OnExit(node N) {
	if h.Exit != nil {
		h.Exit(node)
	}
}

func (h HookFuncs[N]) OnExiting(node N) {
	if h.Exiting != nil {
		h.Exiting(node)
	}
}

func (h HookFuncs[N]) OnExited(node N) {
	if h.Exited != nil {
		h.Exited(node)
	}
}

// Chain calls each non-nil Hooks in order.
func Chain[N any](hooks ...Hooks[N]) Hooks[N] {
	out := make(chain[N], 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

type chain[N any] []Hooks[N]

func (c chain[N]) OnEnter(node N, appearing bool) {
	for _, h := range c {
		h.OnEnter(node, appearing)
	}
}

func (c chain[N]) OnEntering(node N, appearing bool) {
	for _, h := range c {
		h.OnEntering(node, appearing)
	}
}

func (c chain[N]) OnEntered(node N, appearing bool) {
	for _, h := range c {
		h.OnEntered(node, appearing)
	}
}

func (c chain[N]) OnExit(node N) {
	for _, h := range c {
		h.OnExit(node)
	}
}

func (c chain[N]) OnExiting(node N) {
	for _, h := range c {
		h.OnExiting(node)
	}
}

func (c chain[N]) OnExited(node N) {
	for _, h := range c {
		h.OnExited(node)
	}
}
