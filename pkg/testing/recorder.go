package testing

// HookEvent is one hook invocation captured by a HookRecorder.
type HookEvent[N any] struct {
	// Name is the hook without its "On" prefix, lowercased: enter, entering,
	// entered, exit, exiting, exited.
	Name string
	// Node is the element passed to the hook.
	Node N
	// Appearing is the flag passed to enter hooks; false for exit hooks.
	Appearing bool
	// Observed is whatever Observe returned at the time of the call.
	Observed any
}

// HookRecorder records every hook call it receives. It satisfies
// transition.Hooks for any element type.
type HookRecorder[N any] struct {
	// Observe, when set, is called on every hook and its result stored in
	// the event. Use it to capture component state at the instant of the hook.
	Observe func() any

	Events []HookEvent[N]
}

func (r *HookRecorder[N]) record(name string, node N, appearing bool) {
	ev := HookEvent[N]{Name: name, Node: node, Appearing: appearing}
	if r.Observe != nil {
		ev.Observed = r.Observe()
	}
	r.Events = append(r.Events, ev)
}

func (r *HookRecorder[N]) OnEnter(node N, appearing bool)    { r.record("enter", node, appearing) }
func (r *HookRecorder[N]) OnEntering(node N, appearing bool) { r.record("entering", node, appearing) }
func (r *HookRecorder[N]) OnEntered(node N, appearing bool)  { r.record("entered", node, appearing) }
func (r *HookRecorder[N]) OnExit(node N)                     { r.record("exit", node, false) }
func (r *HookRecorder[N]) OnExiting(node N)                  { r.record("exiting", node, false) }
func (r *HookRecorder[N]) OnExited(node N)                   { r.record("exited", node, false) }

// Names returns the recorded hook names in order.
func (r *HookRecorder[N]) Names() []string {
	names := make([]string, len(r.Events))
	for i, ev := range r.Events {
		names[i] = ev.Name
	}
	return names
}

// Count returns how many times the named hook was called.
func (r *HookRecorder[N]) Count(name string) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Name == name {
			n++
		}
	}
	return n
}

// Reset drops recorded events.
func (r *HookRecorder[N]) Reset() {
	r.Events = nil
}
