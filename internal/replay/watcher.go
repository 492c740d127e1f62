package replay

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"calcpad/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Update is delivered once per replay performed by a Watcher.
type Update struct {
	Result Result
	Err    error
}

// WatcherStats tracks watcher activity for debugging.
type WatcherStats struct {
	Events        int
	Runs          int
	Errors        int
	LastEventTime time.Time
	LastEventType string
}

// Watcher replays a script file whenever it changes. It watches the file's
// directory so that editors which save by rename are handled too.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	path        string
	debounceDur time.Duration
	pendingAt   time.Time
	updates     chan Update
	stopCh      chan struct{}
	doneCh      chan struct{}
	started     bool
	stopped     bool
	stats       WatcherStats
}

// NewWatcher creates a watcher for the script at path. Changes closer
// together than debounce collapse into a single replay.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fw,
		path:        abs,
		debounceDur: debounce,
		updates:     make(chan Update, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Updates returns the channel replays are delivered on. It is closed after
// the watcher stops.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Start replays the script once and then begins watching it. It is
// non-blocking; the watch loop runs until Stop is called or ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return errors.New("watcher already stopped")
	}
	if w.started {
		return nil
	}

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.started = true
	logging.Replay("watching %s", w.path)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the loop to exit. It is safe to call
// more than once, and without Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	close(w.stopCh)
	if !started {
		_ = w.watcher.Close()
		close(w.updates)
		return
	}
	<-w.doneCh
}

// Stats returns a copy of the watcher's counters.
func (w *Watcher) Stats() WatcherStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.updates)
	defer func() {
		if err := w.watcher.Close(); err != nil {
			logging.ReplayError("error closing watcher: %v", err)
		}
	}()

	if !w.replay(ctx) {
		return
	}

	tick := w.debounceDur / 2
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	debounceTicker := time.NewTicker(tick)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.ReplayDebug("watcher: context cancelled")
			return

		case <-w.stopCh:
			logging.ReplayDebug("watcher: stop signal received")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.ReplayWarn("watcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-debounceTicker.C:
			if w.due() && !w.replay(ctx) {
				return
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "modify"
	case event.Op&fsnotify.Rename != 0:
		eventType = "rename"
	default:
		return // Ignore chmod and removal
	}
	logging.ReplayDebug("watcher: %s event for %s", eventType, event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.Events++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventType = eventType
	w.pendingAt = time.Now()
}

// due reports whether a change is pending and has been quiet for the
// debounce period, and clears it if so.
func (w *Watcher) due() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pendingAt.IsZero() || time.Since(w.pendingAt) < w.debounceDur {
		return false
	}
	w.pendingAt = time.Time{}
	return true
}

// replay runs the script and delivers the update. It returns false if the
// watcher was asked to stop while delivering.
func (w *Watcher) replay(ctx context.Context) bool {
	res, err := RunFile(ctx, w.path)

	w.mu.Lock()
	w.stats.Runs++
	if err != nil {
		w.stats.Errors++
	}
	w.mu.Unlock()

	select {
	case w.updates <- Update{Result: res, Err: err}:
		return true
	case <-ctx.Done():
		return false
	case <-w.stopCh:
		return false
	}
}
