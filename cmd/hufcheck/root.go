package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/roguewave/hufcheck/internal/config"
	"github.com/roguewave/hufcheck/internal/diagnostic"
)

// app is the state shared by all subcommands.
type app struct {
	configPath string
	cfg        *config.Config
	engine     *diagnostic.Engine

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "hufcheck",
		Short: "Evaluate portfolio systems against the HUF test battery",
		Long: `hufcheck runs eight consistency tests over a portfolio of elements, each holding
a share of a fixed budget and a declared target weight, and reports whether the
system is HUF compliant, HUF capable, or non-compliant.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config file (defaults apply when empty)")

	root.AddCommand(newEvaluateCmd(a), newWatchCmd(a))
	return root
}

// setup loads the config, installs the logger and builds the engine.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return &exitCodeError{code: exitError, err: err}
	}
	a.cfg = cfg

	slog.SetDefault(newLogger(cfg.Log, a.stderr))

	engine, err := diagnostic.NewEngine(cfg.Thresholds)
	if err != nil {
		return &exitCodeError{code: exitError, err: err}
	}
	a.engine = engine

	slog.Debug("hufcheck: config loaded",
		"config", a.configPath,
		"gates", len(cfg.Gates),
		"textfile", cfg.Export.Textfile,
	)
	return nil
}

// newLogger returns a tint console handler for text output and the slog JSON
// handler otherwise.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	if cfg.Format == config.FormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      cfg.SlogLevel(),
		TimeFormat: "15:04:05",
		NoColor:    os.Getenv("NO_COLOR") != "" || w != os.Stderr,
	}))
}
