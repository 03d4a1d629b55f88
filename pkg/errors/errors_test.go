package errors

import (
	"bytes"
	stderrors "errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestErrorString(t *testing.T) {
	err := &Error{
		Op:   "collapse.New",
		Kind: KindConfig,
		Err:  io.ErrUnexpectedEOF,
	}
	got := err.Error()
	want := "collapse.New [config]: unexpected EOF"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewNil(t *testing.T) {
	if err := New("op", KindConfig, nil); err != nil {
		t.Errorf("New with nil cause = %v, want nil", err)
	}
}

func TestErrorUnwrapAndIs(t *testing.T) {
	err := New("collapse.New", KindConfig, io.ErrUnexpectedEOF)
	if !stderrors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected errors.Is to reach the wrapped cause")
	}
	if !stderrors.Is(err, &Error{Kind: KindConfig}) {
		t.Error("expected errors.Is to match on kind")
	}
	if stderrors.Is(err, &Error{Kind: KindRender}) {
		t.Error("unexpected match on a different kind")
	}
	if stderrors.Is(err, &Error{Op: "other", Kind: KindConfig}) {
		t.Error("unexpected match on a different op")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindScheduler, "scheduler"},
		{KindRender, "render"},
		{KindPanic, "panic"},
		{KindScenario, "scenario"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "animation.Loop"
	if got, want := err.Error(), "panic in animation.Loop: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *Error
	handler := &testHandler{onError: func(err *Error) { captured = err }}

	oldHandler := Handler()
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&Error{Op: "test.op", Kind: KindScheduler, Err: io.EOF})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{onPanic: func(err *PanicError) { captured = err }}

	oldHandler := Handler()
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	oldHandler := Handler()
	SetHandler(&testHandler{})
	defer SetHandler(oldHandler)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()
	if got != 42 {
		t.Errorf("callback received %v, want 42", got)
	}
}

func TestSetHandlerNil(t *testing.T) {
	oldHandler := Handler()
	defer SetHandler(oldHandler)

	SetHandler(nil)
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", Handler())
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: log.New(&buf), Verbose: true}

	h.HandleError(&Error{Op: "collapse.New", Kind: KindConfig, Err: io.EOF})
	h.HandlePanic(&PanicError{Op: "animation.Loop", Value: "boom", StackTrace: "main.main"})

	out := buf.String()
	for _, want := range []string{"collapse.New", "kind=config", "animation.Loop", "boom", "main.main"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}

type testHandler struct {
	onError func(*Error)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *Error) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
