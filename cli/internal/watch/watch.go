// Package watch re-runs a callback when YAML files below a directory change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pterm/pterm"
)

// DefaultDebounce is how long the watcher waits for a burst of events to end.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a directory tree for changes
type Watcher struct {
	root     string
	callback func() error
	watcher  *fsnotify.Watcher
	logger   *pterm.Logger
	debounce time.Duration
}

// NewWatcher creates a watcher on root and every directory below it.
func NewWatcher(root string, callback func() error, logger *pterm.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	w := &Watcher{
		root:     absRoot,
		callback: callback,
		watcher:  watcher,
		logger:   logger,
		debounce: DefaultDebounce,
	}
	if err := w.addTree(absRoot); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

// SetDebounce changes the debounce interval. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// addTree watches dir and all directories below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Relevant reports whether an event should trigger a run.
func Relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

// Run calls the callback once, then again after every burst of relevant
// changes, until ctx is done. Callback errors are logged and do not stop the
// watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.callback(); err != nil {
		return fmt.Errorf("initial callback failed: %w", err)
	}

	debounceTimer := time.NewTimer(w.debounce)
	debounceTimer.Stop()
	var debounceCh <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create != 0 {
				if isDir(event.Name) {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("cannot watch new directory", w.logger.Args("dir", event.Name, "error", err))
					}
					continue
				}
			}

			if Relevant(event) {
				w.logger.Debug("change detected", w.logger.Args("file", event.Name, "op", event.Op.String()))
				debounceTimer.Reset(w.debounce)
				debounceCh = debounceTimer.C
			}

		case <-debounceCh:
			debounceCh = nil
			if err := w.callback(); err != nil {
				w.logger.Error("conversion failed", w.logger.Args("error", err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", w.logger.Args("error", err))

		case <-ctx.Done():
			return nil
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
