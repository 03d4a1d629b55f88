// Package cmd implements the collapse CLI commands.
//
// Every command reads a YAML scenario: a collapse configuration plus a list
// of timed activations. trace and render replay it on a manual clock, so
// their output is identical from run to run; play runs it in real time.
//
//	collapse trace faq.yaml --sample 50ms
//	collapse render faq.yaml --at 100ms
//	collapse play faq.yaml
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/go-drift/accordion/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "collapse",
		Short:         "Replay accordion collapse transitions",
		Long:          "collapse drives an accordion collapse through a scripted timeline and reports what it renders at each step.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(stderr, level)
			errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: verbose})
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("collapse {{.Version}} (built " + BuildTime + ")\n")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every phase change")

	root.AddCommand(newTraceCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newPlayCmd())
	return root
}
