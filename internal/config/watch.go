package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a session config file whenever it changes on disk.
// The parent directory is watched so editors that replace the file on save
// are still noticed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	once     sync.Once
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		watcher:  w,
		path:     abs,
		debounce: DefaultDebounce,
	}, nil
}

// SetDebounce overrides the quiet period before a reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Close stops the underlying watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.watcher.Close()
	})
	return err
}

// Run delivers every successfully reloaded and validated config to
// onReload until ctx is cancelled. Invalid files are logged and skipped so
// the running session keeps its last good config.
func (w *Watcher) Run(ctx context.Context, onReload func(Session)) error {
	defer w.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config watcher error", "path", w.path, "error", err)

		case <-timer.C:
			cfg, err := ReadSession(w.path)
			if errors.Is(err, fs.ErrNotExist) {
				// moved away or mid-replace; keep the running config
				slog.Warn("config file gone, reload skipped", "path", w.path)
				continue
			}
			if err != nil {
				slog.Warn("config reload rejected", "path", w.path, "error", err)
				continue
			}
			slog.Info("config reloaded", "path", w.path)
			onReload(cfg)
		}
	}
}
