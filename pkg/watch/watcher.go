// Package watch reloads a catalog file when it changes on disk.
package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/widgetspec/pkg/catalog"
)

// ReloadFunc receives each successfully validated catalog.
type ReloadFunc func(*catalog.QueryService)

// Options configures a CatalogWatcher.
type Options struct {
	// Debounce groups bursts of events into one reload (default 200ms).
	Debounce time.Duration
	Logger   *slog.Logger
}

// Stats describes watcher activity.
type Stats struct {
	Reloads   int64
	Failures  int64
	Pending   bool
	IsRunning bool
}

// CatalogWatcher watches one catalog file and hands every valid new version
// to its ReloadFunc. An invalid file is logged and skipped, so the previous
// snapshot stays live.
//
// The parent directory is watched rather than the file itself so that
// editors which save by rename keep triggering reloads.
//
//	w, err := watch.New(path, srv.SetQuery, watch.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	if err := w.Start(); err != nil {
//	    return err
//	}
//	defer w.Stop()
type CatalogWatcher struct {
	path     string
	onReload ReloadFunc
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	timerMu sync.Mutex
	timer   *time.Timer

	reloads  atomic.Int64
	failures atomic.Int64

	mu       sync.Mutex
	started  bool
	stopped  bool
	stopChan chan struct{}
	done     chan struct{}
}

// New creates a watcher for the catalog at path. Nothing is watched until
// Start.
func New(path string, onReload ReloadFunc, opts Options) (*CatalogWatcher, error) {
	if onReload == nil {
		return nil, fmt.Errorf("reload callback is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = 200 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogWatcher{
		path:     abs,
		onReload: onReload,
		watcher:  fw,
		logger:   logger,
		debounce: opts.Debounce,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. It may be called once.
func (cw *CatalogWatcher) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.stopped {
		return fmt.Errorf("watcher already stopped")
	}
	if cw.started {
		return fmt.Errorf("watcher already started")
	}

	dir := filepath.Dir(cw.path)
	if err := cw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	cw.started = true

	go cw.eventLoop()
	cw.logger.Info("Catalog watcher started", "path", cw.path)
	return nil
}

// Stop ends watching and cancels a pending reload. Safe to call more than once.
func (cw *CatalogWatcher) Stop() error {
	cw.mu.Lock()
	if cw.stopped {
		cw.mu.Unlock()
		return nil
	}
	cw.stopped = true
	started := cw.started
	close(cw.stopChan)
	cw.mu.Unlock()

	cw.timerMu.Lock()
	if cw.timer != nil {
		cw.timer.Stop()
		cw.timer = nil
	}
	cw.timerMu.Unlock()

	err := cw.watcher.Close()
	if started {
		<-cw.done
	}
	cw.logger.Info("Catalog watcher stopped", "path", cw.path)
	return err
}

// Reload loads and validates the file now. On success the new catalog is
// handed to the ReloadFunc; on failure the error is returned and nothing
// is swapped.
func (cw *CatalogWatcher) Reload() error {
	qs, err := catalog.LoadAndQuery(cw.path)
	if err != nil {
		cw.failures.Add(1)
		return err
	}
	cw.onReload(qs)
	cw.reloads.Add(1)
	cw.logger.Info("Catalog reloaded",
		"path", cw.path,
		"name", qs.Catalog.Name,
		"version", qs.Catalog.Version,
		"widgets", len(qs.Catalog.Widgets))
	return nil
}

// Stats returns watcher statistics.
func (cw *CatalogWatcher) Stats() Stats {
	cw.timerMu.Lock()
	pending := cw.timer != nil
	cw.timerMu.Unlock()

	cw.mu.Lock()
	running := cw.started && !cw.stopped
	cw.mu.Unlock()

	return Stats{
		Reloads:   cw.reloads.Load(),
		Failures:  cw.failures.Load(),
		Pending:   pending,
		IsRunning: running,
	}
}

func (cw *CatalogWatcher) eventLoop() {
	defer close(cw.done)
	for {
		select {
		case <-cw.stopChan:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error("Catalog watcher error", "error", err)
		}
	}
}

func (cw *CatalogWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != cw.path {
		return
	}
	cw.logger.Debug("Catalog file event", "op", event.Op.String())

	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		cw.scheduleReload()
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		cw.logger.Warn("Catalog file removed, keeping current catalog", "path", cw.path)
	}
}

// scheduleReload restarts the debounce window.
func (cw *CatalogWatcher) scheduleReload() {
	cw.timerMu.Lock()
	defer cw.timerMu.Unlock()

	if cw.timer != nil {
		cw.timer.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(cw.debounce, func() {
		cw.timerMu.Lock()
		if cw.timer == t {
			cw.timer = nil
		}
		cw.timerMu.Unlock()

		select {
		case <-cw.stopChan:
			return
		default:
		}
		if err := cw.Reload(); err != nil {
			cw.logger.Error("Catalog reload rejected, keeping current catalog",
				"path", cw.path,
				"error", err)
		}
	})
	cw.timer = t
}
