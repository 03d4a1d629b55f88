package transition

import "fmt"

// Status is the phase a transitioning element is in.
//
// The status follows this state machine:
//
//	            SetIn(true)              timeout
//	Exited ─────────────────► Entering ─────────► Entered
//	  ▲                                              │
//	  │      timeout                 SetIn(false)    │
//	  └─────────────── Exiting ◄─────────────────────┘
//
// Unmounted precedes Exited when MountOnEnter or UnmountOnExit is set.
type Status int

const (
	// Unmounted means the element is not part of the tree.
	Unmounted Status = iota
	// Exited means the element is mounted and fully hidden.
	Exited
	// Entering means the element is animating toward shown.
	Entering
	// Entered means the element is fully shown.
	Entered
	// Exiting means the element is animating toward hidden.
	Exiting
)

// String returns the lowercase phase name.
func (s Status) String() string {
	switch s {
	case Unmounted:
		return "unmounted"
	case Exited:
		return "exited"
	case Entering:
		return "entering"
	case Entered:
		return "entered"
	case Exiting:
		return "exiting"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// IsAnimating reports whether s is an intermediate phase.
func (s Status) IsAnimating() bool {
	return s == Entering || s == Exiting
}

// IsShown reports whether s is heading toward or at fully shown.
func (s Status) IsShown() bool {
	return s == Entering || s == Entered
}
