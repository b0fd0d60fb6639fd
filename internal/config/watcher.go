package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events editors emit on save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a set of files (typically the OpenAPI document and the
// config file) and notifies callbacks once writes settle.
type Watcher struct {
	watcher   *fsnotify.Watcher
	logger    *zap.Logger
	files     map[string]struct{}
	callbacks []func(changed []string)
	debounce  time.Duration

	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	notifyMu sync.Mutex
	done     chan struct{}
	started  bool
	stopped  bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before callbacks run.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger routes watcher errors and reload notices through logger.
func WithWatcherLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a watcher for the given files. Empty paths are skipped
// so callers can pass an optional config path unconditionally.
func NewWatcher(paths []string, options ...WatcherOption) (*Watcher, error) {
	files := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("config watcher: resolve %s: %w", path, err)
		}
		files[abs] = struct{}{}
	}
	if len(files) == 0 {
		return nil, errors.New("config watcher: no files to watch")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsWatcher,
		logger:   zap.NewNop(),
		files:    files,
		debounce: DefaultDebounce,
		pending:  make(map[string]struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// OnChange registers a callback. Callbacks run sequentially on the watcher's
// goroutine with the sorted list of files that changed since the last run.
// Register callbacks before calling Start.
func (w *Watcher) OnChange(callback func(changed []string)) {
	if callback == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching. Parent directories are watched rather than the files
// themselves so atomic renames by editors are still observed.
func (w *Watcher) Start() error {
	dirs := make(map[string]struct{})
	for file := range w.files {
		dirs[filepath.Dir(file)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("config watcher: watch %s: %w", dir, err)
		}
	}

	w.mu.Lock()
	w.started = true
	w.mu.Unlock()

	go w.watch()
	return nil
}

// Stop stops watching and cancels any pending notification.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	started := w.started
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	if started {
		<-w.done
	}
	return err
}

func (w *Watcher) watch() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, watched := w.files[name]; !watched {
				continue
			}
			w.schedule(name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) schedule(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.pending[name] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.notify)
}

func (w *Watcher) notify() {
	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()

	w.mu.Lock()
	if w.stopped || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	changed := make([]string, 0, len(w.pending))
	for name := range w.pending {
		changed = append(changed, name)
	}
	w.pending = make(map[string]struct{})
	callbacks := make([]func([]string), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	sort.Strings(changed)
	w.logger.Info("watched files changed", zap.Strings("files", changed))
	for _, cb := range callbacks {
		cb(changed)
	}
}
