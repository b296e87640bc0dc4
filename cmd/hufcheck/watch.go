package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roguewave/hufcheck/internal/exporter"
	"github.com/roguewave/hufcheck/internal/gate"
	"github.com/roguewave/hufcheck/internal/input"
	"github.com/roguewave/hufcheck/pkg/types"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-evaluate a system document every time it changes",
		Long: `Watch evaluates the document once, then again on every save. Each evaluation
prints the verdict and refreshes the textfile export when one is configured.
Invalid saves are logged and skipped. Stops on SIGINT or SIGTERM.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), args[0])
		},
	}
}

func (a *app) watch(ctx context.Context, path string) error {
	sys, err := input.Load(path)
	if err != nil {
		return &exitCodeError{code: exitError, err: err}
	}
	a.publish(a.engine.Evaluate(sys))

	err = input.Watch(ctx, path, func(s types.System) {
		a.publish(a.engine.Evaluate(s))
	})
	if err != nil {
		return &exitCodeError{code: exitError, err: err}
	}
	slog.Info("watch: stopped", "path", path)
	return nil
}

// publish reports one evaluation: a verdict line on stdout, a log record with
// the gate outcome and, when configured, a fresh textfile.
func (a *app) publish(r types.Report) {
	s := r.Summary
	fmt.Fprintf(a.stdout, "%s: %s (%d pass, %d fail, %d flag)\n",
		r.System, s.Verdict().Banner(), s.Passes, s.Fails, s.Flags)

	results, err := gate.Evaluate(r, a.cfg.Gates)
	if err != nil {
		slog.Error("watch: gate evaluation failed", "err", err)
	}
	slog.Info("watch: evaluated",
		"system", r.System,
		"verdict", s.Verdict(),
		"failed_gates", len(gate.Failed(results)),
	)

	if path := a.cfg.Export.Textfile; path != "" {
		if err := exporter.WriteTextfile(path, r); err != nil {
			slog.Error("watch: textfile export failed", "path", path, "err", err)
		}
	}
}
