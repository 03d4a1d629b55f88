// Package testing provides helpers for deterministic transition tests.
//
// # Quick Start
//
// Build a harness, drive a collapse with it, and assert on the trace:
//
//	func TestMyAccordion(t *testing.T) {
//	    h := accordiontest.NewHarness()
//	    m := &accordiontest.CountingMeasurer{Height: 120}
//	    rec := &accordiontest.HookRecorder[*html.Node]{}
//
//	    c, _ := collapse.New(collapse.Config{
//	        Transition: collapse.TransitionConfig{Hooks: rec},
//	    }, false, h.Scheduler, m)
//
//	    c.SetActive(true)
//	    h.Advance(350 * time.Millisecond)
//
//	    if got := rec.Names(); !slices.Equal(got, []string{"enter", "entering", "entered"}) {
//	        t.Errorf("hooks = %v", got)
//	    }
//	}
//
// # Time
//
// [Harness.Advance] moves the manual clock and fires every timer that came
// due, in due order, on the calling goroutine.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import accordiontest "github.com/go-drift/accordion/pkg/testing"
package testing
