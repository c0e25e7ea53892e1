package server

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/sitebuilder/internal/content"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// debounceDelay coalesces bursts of filesystem events (editors typically
// write, rename, and chmod in quick succession) into one rebuild.
const debounceDelay = 300 * time.Millisecond

// watch rebuilds the site whenever the content tree changes. fsnotify does
// not watch recursively, so every directory is registered individually and
// newly created directories are added as they appear.
func (s *Server) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, s.cfg.Content.Dir); err != nil {
		return err
	}

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if content.Hidden(filepath.Base(event.Name)) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				// Best effort: if the new entry is a directory, watch it too.
				if err := addRecursive(watcher, event.Name); err != nil {
					slog.Debug("Could not watch new entry", logfields.Path(event.Name), logfields.Error(err))
				}
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				timerC = timer.C
			} else {
				timer.Reset(debounceDelay)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			slog.Info("Content changed, rebuilding")
			started := time.Now()
			if err := s.builder.Build(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
				continue
			}
			slog.Info("Rebuild complete",
				logfields.DurationMS(float64(time.Since(started).Milliseconds())))

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(watchErr))
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if content.Hidden(d.Name()) && p != root {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}
