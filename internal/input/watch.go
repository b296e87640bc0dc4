package input

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/roguewave/hufcheck/pkg/types"
)

// Watch monitors the document at path and calls onChange with the newly
// loaded System each time it is written or replaced. It runs until ctx is
// cancelled.
//
// The parent directory is watched rather than the file, so editors that save
// by renaming a temporary file over the document keep being picked up. A
// document that fails to load is logged and skipped; onChange is not called.
func Watch(ctx context.Context, path string, onChange func(types.System)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	slog.Info("input: watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			sys, err := Load(path)
			if err != nil {
				slog.Error("input: reload failed, keeping previous system",
					"path", path, "err", err)
				continue
			}

			slog.Info("input: reloaded", "path", path, "elements", len(sys.Elements))
			onChange(sys)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("input: watcher error", "err", err)
		}
	}
}
