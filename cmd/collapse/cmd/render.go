package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/accordion/cmd/collapse/internal/scenario"
)

func newRenderCmd() *cobra.Command {
	var at time.Duration

	cmd := &cobra.Command{
		Use:   "render <scenario.yaml>",
		Short: "Print the collapse markup at a point in the scenario",
		Long: `Replays the scenario up to --at and prints the container's HTML. Without
--at the whole scenario runs and the settled markup is printed. Nothing is
printed while the collapse is unmounted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd.OutOrStdout(), args[0], at, cmd.Flags().Changed("at"))
		},
	}
	cmd.Flags().DurationVar(&at, "at", 0, "offset to render at")
	return cmd
}

func runRender(ctx context.Context, w io.Writer, path string, at time.Duration, atSet bool) error {
	if at < 0 {
		return fmt.Errorf("offset %v is negative", at)
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
	if atSet {
		err = p.RunUntil(ctx, at)
	} else {
		err = p.Run(ctx)
	}
	if err != nil {
		return err
	}

	c := p.Collapse()
	logger.Debug("rendering", "at", p.Elapsed(), "status", c.Status())
	if c.Render() == nil {
		logger.Info("collapse is unmounted", "at", p.Elapsed())
		return nil
	}
	if err := c.RenderHTML(w); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}
