package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 150 * time.Millisecond

// watchCodeFile watches filename until ctx is cancelled and calls onChange
// with the file contents after each settled write. The parent directory is
// watched so editors that save by rename are still seen.
func watchCodeFile(ctx context.Context, filename string, logger *slog.Logger, onChange func(code string)) error {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return fmt.Errorf("watch %s: %w", filename, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", filename, err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filename, err)
	}

	logger.Info("watcher: started", slog.String("file", absPath))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(watchDebounce)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(watchDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			data, readErr := os.ReadFile(absPath)
			if readErr != nil {
				logger.Warn("watcher: read failed", slog.String("file", absPath), slog.String("error", readErr.Error()))
				continue
			}
			logger.Debug("watcher: reloaded", slog.String("file", absPath))
			onChange(string(data))

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != absPath {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
