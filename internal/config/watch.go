package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/appwatch/appwatch/internal/pattern"
	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDebounce is how long the watcher waits for writes to settle
const DefaultReloadDebounce = 500 * time.Millisecond

// Watcher reloads configuration when a config file changes and publishes the
// new pattern set. Invalid reloads are logged and the previous set stays active.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
	reload   func() (*Configuration, error)
	logger   *slog.Logger

	current pattern.Set
	updates chan pattern.Set
}

// NewWatcher creates a watcher for paths. reload is called after every change
// and current is the set already in use by the poll loop.
func NewWatcher(paths []string, reload func() (*Configuration, error), current pattern.Set, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsWatcher,
		files:    make(map[string]struct{}),
		debounce: DefaultReloadDebounce,
		reload:   reload,
		logger:   logger,
		current:  current,
		updates:  make(chan pattern.Set, 1),
	}

	for _, path := range paths {
		if err := w.add(path); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}
	return w, nil
}

// add watches the directory holding path; editors often replace files by rename
func (w *Watcher) add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	w.files[absPath] = struct{}{}
	if err := w.watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}
	return nil
}

// SetDebounce changes the settle delay
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Updates delivers pattern sets that differ from the previous one.
// Only the latest pending set is kept.
func (w *Watcher) Updates() <-chan pattern.Set {
	return w.updates
}

// Run processes file events until ctx is cancelled. Returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	// Reset discards any unreceived expiry, so the timer needs no draining
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			absPath, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, watched := w.files[absPath]; !watched {
				continue
			}
			w.logger.Debug("config file changed", "path", absPath, "op", event.Op.String())
			timer.Reset(w.debounce)

		case <-timer.C:
			w.apply()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

// apply reloads the configuration and publishes the pattern set if it changed
func (w *Watcher) apply() {
	cfg, err := w.reload()
	if err != nil {
		w.logger.Warn("ignoring invalid config reload", "error", err)
		return
	}
	set, err := pattern.Parse(cfg.Apps, cfg.Regex)
	if err != nil {
		w.logger.Warn("ignoring invalid patterns from config reload", "error", err)
		return
	}
	if len(set) == 0 {
		w.logger.Warn("ignoring config reload without app patterns")
		return
	}
	if set.Equal(w.current) {
		w.logger.Debug("config reloaded, patterns unchanged")
		return
	}

	w.current = set
	select {
	case <-w.updates:
	default:
	}
	w.updates <- set
	w.logger.Info("patterns reloaded", "patterns", set.String())
}
