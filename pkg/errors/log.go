package errors

import (
	"os"

	"github.com/charmbracelet/log"
)

// LogHandler is an ErrorHandler that writes through a charmbracelet logger.
type LogHandler struct {
	// Logger receives the records. Nil means a stderr logger.
	Logger *log.Logger
	// Verbose adds stack traces to panic records.
	Verbose bool
}

func (h *LogHandler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "accordion"})
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	h.logger().Error(err.Op, "kind", err.Kind.String(), "err", err.Err)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	l := h.logger()
	if h.Verbose && err.StackTrace != "" {
		l.Error("panic", "op", err.Op, "value", err.Value, "stack", err.StackTrace)
		return
	}
	l.Error("panic", "op", err.Op, "value", err.Value)
}
