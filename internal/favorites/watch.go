package favorites

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"wasup-chucks/internal/logging"
)

const watchDebounce = 200 * time.Millisecond

// Watch calls fn with the reloaded favorites whenever the backing file changes, until ctx ends.
// The parent directory is watched so editors that replace the file by rename are seen too.
func (s *FileStore) Watch(ctx context.Context, logger *slog.Logger, fn func(Set)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		name := filepath.Base(s.path)

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != name {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					timer.Reset(watchDebounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				set, err := s.Load()
				if err != nil {
					logging.Warn(logger, "favorites reload failed", logging.FieldPath, s.path, "error", err)
					continue
				}
				logging.Info(logger, "favorites changed",
					logging.FieldCount, len(set.Items)+len(set.Keywords))
				fn(set)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn(logger, "favorites watcher error", "error", err)
			}
		}
	}()
	return nil
}
