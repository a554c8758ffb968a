package bbsconfig

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/smartyhall/meshbbs/pkg/bbslog"
)

// Watcher reloads Config from path whenever the file changes, debouncing
// rapid successive writes (e.g. an editor's write-then-rename).
type Watcher struct {
	path     string
	debounce time.Duration
	log      *bbslog.Logger

	mu      sync.RWMutex
	current Config
	cancel  context.CancelFunc
}

// NewWatcher loads path once and returns a Watcher seeded with that
// config. Call Start to begin watching for subsequent edits.
func NewWatcher(path string, log *bbslog.Logger) (*Watcher, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Watcher{path: path, debounce: 500 * time.Millisecond, log: log, current: cfg}, nil
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Start begins watching the config file's directory for changes.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := dirOf(w.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	go w.run(ctx, watcher)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
}

func (w *Watcher) run(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if baseOf(event.Name) != baseOf(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", bbslog.F("error", err.Error()))
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.log.Warn("config reload failed", bbslog.F("path", w.path), bbslog.F("error", err.Error()))
		return
	}
	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()
	w.log.Info("config reloaded", bbslog.F("path", w.path))
}
