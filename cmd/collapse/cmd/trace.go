package cmd

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/accordion/cmd/collapse/internal/scenario"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

type traceOpts struct {
	sample time.Duration // interval between VisualHeight samples, 0 disables
	format string        // "text" or "yaml"
}

func newTraceCmd() *cobra.Command {
	opts := traceOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "trace <scenario.yaml>",
		Short: "Print every frame a scenario renders",
		Long: `Replays the scenario and prints one line per phase change: the offset,
what caused it, the phase, and the (class, height) the container renders.

With --sample the on-screen height is also reported at a fixed interval,
following the ease curve while a phase animates. Use "-" to read the
scenario from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().DurationVar(&opts.sample, "sample", 0, "sample the visual height at this interval")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text or yaml")
	return cmd
}

// traceRow is one line of trace output. Sample rows carry Visual instead of
// a frame.
type traceRow struct {
	At     string   `yaml:"at"`
	Cause  string   `yaml:"cause"`
	Status string   `yaml:"status,omitempty"`
	Class  string   `yaml:"class,omitempty"`
	Height string   `yaml:"height,omitempty"`
	Visual *float64 `yaml:"visual,omitempty"`

	offset time.Duration
}

func runTrace(ctx context.Context, w io.Writer, path string, opts traceOpts) error {
	if opts.format != formatText && opts.format != formatYAML {
		return fmt.Errorf("unknown format %q (want text or yaml)", opts.format)
	}
	if opts.sample < 0 {
		return fmt.Errorf("sample interval %v is negative", opts.sample)
	}
	logger := loggerFromContext(ctx)

	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	p, err := scenario.NewPlayer(s, logger)
	if err != nil {
		return err
	}

	var samples []traceRow
	if opts.sample > 0 {
		for at := time.Duration(0); ; at += opts.sample {
			if err := p.RunUntil(ctx, at); err != nil {
				return err
			}
			v := p.VisualHeight()
			samples = append(samples, traceRow{At: at.String(), Cause: "sample", Visual: &v, offset: at})
			if p.Done() {
				break
			}
		}
	} else if err := p.Run(ctx); err != nil {
		return err
	}

	rows := make([]traceRow, 0, len(p.Events())+len(samples))
	for _, e := range p.Events() {
		rows = append(rows, traceRow{
			At:     e.At.String(),
			Cause:  e.Cause,
			Status: e.Frame.Status.String(),
			Class:  e.Frame.Class,
			Height: e.Frame.HeightString(),
			offset: e.At,
		})
	}
	rows = append(rows, samples...)
	slices.SortStableFunc(rows, func(a, b traceRow) int {
		return cmp.Compare(a.offset, b.offset)
	})
	logger.Debug("replayed scenario", "path", path, "events", len(p.Events()), "samples", len(samples))

	if opts.format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	}
	for _, r := range rows {
		var err error
		if r.Visual != nil {
			_, err = fmt.Fprintf(w, "%8s  %-6s  %spx\n", r.At, r.Cause, strconv.FormatFloat(*r.Visual, 'f', 2, 64))
		} else {
			_, err = fmt.Fprintf(w, "%8s  %-6s  %-9s (%s, %s)\n", r.At, r.Cause, r.Status, r.Class, r.Height)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
