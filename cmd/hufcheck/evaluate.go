package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roguewave/hufcheck/internal/exporter"
	"github.com/roguewave/hufcheck/internal/gate"
	"github.com/roguewave/hufcheck/internal/input"
	"github.com/roguewave/hufcheck/pkg/types"
)

// Output formats for evaluate.
const (
	formatJSON = "json"
	formatProm = "prom"
)

// evaluation is one JSON document written by evaluate.
type evaluation struct {
	Path    string        `json:"path"`
	Verdict types.Verdict `json:"verdict"`
	Banner  string        `json:"banner"`
	Report  types.Report  `json:"report"`
	Gates   []gate.Result `json:"gates"`
}

func newEvaluateCmd(a *app) *cobra.Command {
	var (
		format string
		jobs   int
	)
	cmd := &cobra.Command{
		Use:   "evaluate FILE...",
		Short: "Evaluate system documents and check the configured gates",
		Long: `Evaluate loads every system document (YAML, or JSON for .json files), runs the
test battery on each and prints the reports. The exit status is 1 when any
gate fails for any file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatProm {
				return &exitCodeError{code: exitError, err: fmt.Errorf("unknown format %q (want json or prom)", format)}
			}
			if jobs < 1 {
				return &exitCodeError{code: exitError, err: fmt.Errorf("--jobs must be at least 1, got %d", jobs)}
			}
			return a.evaluate(cmd.Context(), args, format, jobs)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json | prom")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of files evaluated concurrently")
	return cmd
}

func (a *app) evaluate(ctx context.Context, paths []string, format string, jobs int) error {
	reports, err := a.evaluateFiles(ctx, paths, jobs)
	if err != nil {
		return &exitCodeError{code: exitError, err: err}
	}
	nameByPath(reports, paths)

	evals := make([]evaluation, len(reports))
	failed := 0
	for i, r := range reports {
		results, err := gate.Evaluate(r, a.cfg.Gates)
		if err != nil {
			return &exitCodeError{code: exitError, err: err}
		}
		failed += len(gate.Failed(results))
		v := r.Summary.Verdict()
		evals[i] = evaluation{Path: paths[i], Verdict: v, Banner: v.Banner(), Report: r, Gates: results}
	}

	switch format {
	case formatProm:
		if err := exporter.WriteText(a.stdout, reports...); err != nil {
			return &exitCodeError{code: exitError, err: err}
		}
	default:
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		for _, e := range evals {
			if err := enc.Encode(e); err != nil {
				return &exitCodeError{code: exitError, err: fmt.Errorf("encode %s: %w", e.Path, err)}
			}
		}
	}

	if path := a.cfg.Export.Textfile; path != "" {
		if err := exporter.WriteTextfile(path, reports...); err != nil {
			return &exitCodeError{code: exitError, err: err}
		}
		slog.Debug("evaluate: textfile written", "path", path)
	}

	if failed > 0 {
		return &exitCodeError{code: exitGateFailed, err: fmt.Errorf("%d gate check(s) failed", failed)}
	}
	return nil
}

// evaluateFiles loads and evaluates paths with at most jobs files in flight.
// Reports are returned in the order of paths.
func (a *app) evaluateFiles(ctx context.Context, paths []string, jobs int) ([]types.Report, error) {
	reports := make([]types.Report, len(paths))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, path := range paths {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			sys, err := input.Load(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			r := a.engine.Evaluate(sys)
			slog.Info("evaluate: done",
				"path", path,
				"system", r.System,
				"verdict", r.Summary.Verdict(),
				"passes", r.Summary.Passes,
				"fails", r.Summary.Fails,
				"flags", r.Summary.Flags,
			)
			reports[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// nameByPath renames reports whose system name is shared with another file to
// the file path, so exported series can be told apart.
func nameByPath(reports []types.Report, paths []string) {
	seen := make(map[string]int, len(reports))
	for _, r := range reports {
		seen[r.System]++
	}
	for i := range reports {
		if seen[reports[i].System] > 1 {
			slog.Debug("evaluate: system name shared, using path",
				"system", reports[i].System, "path", paths[i])
			reports[i].System = paths[i]
		}
	}
}
