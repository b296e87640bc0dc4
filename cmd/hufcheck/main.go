// Command hufcheck evaluates portfolio systems against the HUF test battery.
//
//	hufcheck evaluate [--config hufcheck.yaml] [--format json|prom] [--jobs n] FILE...
//	hufcheck watch [--config hufcheck.yaml] FILE
//
// Exit status: 0 when every gate passes, 1 when a gate fails, 2 on input,
// config or usage errors.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

const (
	exitOK         = 0
	exitGateFailed = 1
	exitError      = 2
)

// exitCodeError carries the process exit status out of a command.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// execute runs the command line and maps its error to an exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var ce *exitCodeError
	if errors.As(err, &ce) {
		if ce.code == exitGateFailed {
			slog.Warn("hufcheck: gates failed", "err", ce.err)
		} else {
			slog.Error("hufcheck: failed", "err", ce.err)
		}
		return ce.code
	}
	slog.Error("hufcheck: failed", "err", err)
	return exitError
}
