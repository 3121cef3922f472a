package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/shaderprog"
)

// watch runs watchLoop until interrupted.
func watch(cfg config, b *shaderprog.Builder, r *reporter, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watchLoop(ctx, cfg, b, r, logger)
}

// watchLoop builds once, then rebuilds every time a watched file is written
// or created, or another file is renamed over it, until ctx is done.
// Directories are watched rather than files so editors that replace files
// on save keep triggering rebuilds.
func watchLoop(ctx context.Context, cfg config, b *shaderprog.Builder, r *reporter, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	files := make(map[string]bool)
	dirs := make(map[string]bool)
	update := func() error {
		list, err := watchedFiles(cfg)
		if err != nil {
			return err
		}
		for _, f := range list {
			abs, err := filepath.Abs(f)
			if err != nil {
				return err
			}
			files[abs] = true
			dir := filepath.Dir(abs)
			if dirs[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
		return nil
	}

	if err := update(); err != nil {
		return err
	}
	buildAll(cfg, b, r)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !files[filepath.Clean(event.Name)] {
				continue
			}
			logger.Debug("progc: source changed", "file", event.Name, "op", event.Op.String())
			// A manifest edit may add sources.
			if err := update(); err != nil {
				r.Failure("", err)
				continue
			}
			buildAll(cfg, b, r)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("progc: watcher error", "err", err)
		}
	}
}
