package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/accordion/cmd/collapse/internal/scenario"
	"github.com/go-drift/accordion/pkg/animation"
	"github.com/go-drift/accordion/pkg/collapse"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <scenario.yaml>",
		Short: "Run a scenario in real time",
		Long: `Runs the scenario against wall-clock timers on a dispatch loop, printing
each frame as it happens. Offsets are measured, so they drift from the
scripted ones by scheduling latency. Interrupt to stop early.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

func runPlay(ctx context.Context, w io.Writer, path string) error {
	logger := loggerFromContext(ctx)
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}

	loopCtx, stop := context.WithCancel(ctx)
	defer stop()
	loop := animation.NewLoop(16)
	go loop.Run(loopCtx)
	sched := animation.NewTimerScheduler(loop)

	var (
		start   = time.Now()
		cause   = scenario.CauseMount
		applied int
		done    = make(chan struct{})
		failed  error
	)
	emit := func(f collapse.Frame) {
		at := time.Since(start).Round(time.Millisecond)
		if _, err := fmt.Fprintf(w, "%8s  %-6s  %-9s %s\n", at, cause, f.Status, f); err != nil && failed == nil {
			failed = err
		}
	}

	err = loop.Do(ctx, func() {
		c, err := s.NewCollapse(sched, animation.SystemClock{}, logger)
		if err != nil {
			failed = err
			close(done)
			return
		}
		settled := func() {
			if applied == len(s.Steps) && !c.Status().IsAnimating() {
				select {
				case <-done:
				default:
					close(done)
				}
			}
		}
		c.AddListener(func(f collapse.Frame) {
			emit(f)
			settled()
		})
		emit(c.Frame())
		c.Mount()
		cause = scenario.CauseTimer

		// Steps are chained so ones sharing an offset keep their order.
		var next func()
		next = func() {
			if applied == len(s.Steps) {
				return
			}
			step := s.Steps[applied]
			sched.Schedule(step.At.Std()-time.Since(start), func() {
				applied++
				cause = scenario.CauseStep
				c.SetActive(step.Active)
				cause = scenario.CauseTimer
				settled()
				next()
			})
		}
		next()
		settled()
	})
	if err != nil {
		return err
	}

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	var result error
	if doErr := loop.Do(ctx, func() { result = failed }); doErr != nil {
		return doErr
	}
	logger.Debug("played scenario", "path", path, "elapsed", time.Since(start).Round(time.Millisecond))
	return result
}
