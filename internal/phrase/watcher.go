package phrase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher reloads a Store whenever one of its source files changes on disk.
type Watcher struct {
	store    *Store
	debounce time.Duration
	onReload func(*Database)
}

func NewWatcher(store *Store) *Watcher {
	return &Watcher{
		store:    store,
		debounce: defaultDebounce,
	}
}

// OnReload registers a callback invoked with every snapshot the watcher loads.
func (w *Watcher) OnReload(fn func(*Database)) {
	w.onReload = fn
}

// Run watches the directories holding the source files until ctx is done.
// Directories are watched instead of files so that editors replacing the file
// through a rename are still noticed.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher > %w", err)
	}
	defer func() {
		_ = fsWatcher.Close()
	}()

	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, path := range w.store.Paths() {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("filepath.Abs(%s) > %w", path, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			slog.Default().Warn("cannot watch phrase directory", "directory", dir, "error", err)
			continue
		}
		slog.Default().Debug("watching phrase directory", "directory", dir)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			slog.Default().Warn("phrase watcher error", "error", err)
		case <-fire:
			fire = nil
			db := w.store.Reload()
			if w.onReload != nil {
				w.onReload(db)
			}
		}
	}
}
