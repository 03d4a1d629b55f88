// Package errors provides structured error handling for the accordion library.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid component or transition configuration.
	KindConfig
	// KindScheduler indicates a timer or dispatch loop failure.
	KindScheduler
	// KindRender indicates a failure while producing markup.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindScenario indicates a malformed replay scenario.
	KindScenario
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindScheduler:
		return "scheduler"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindScenario:
		return "scenario"
	default:
		return "unknown"
	}
}

// Error is a structured error carrying the failed operation and its category.
type Error struct {
	// Op is the operation that failed (e.g., "collapse.New").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New returns an Error for op wrapping err. It returns nil when err is nil so
// validation results can be passed through unconditionally.
func New(op string, kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind. An Op on target
// must match as well when set.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" && t.Op != e.Op {
		return false
	}
	return t.Kind == e.Kind
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "animation.Loop").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the library.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
