// Package watch reruns an action whenever a source file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/beacon-hill-archive/bhexport/internal/logger"
)

// DefaultInterval is the minimum time between two runs.
const DefaultInterval = 5 * time.Second

// Trigger watches one file. Bursts of events are coalesced into a single
// run, and runs are at least the limiter interval apart.
type Trigger struct {
	path    string
	limiter *rate.Limiter
}

// New creates a Trigger for path. Events for the file's write-ahead log
// siblings count as changes to the file.
func New(path string, interval time.Duration) *Trigger {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Trigger{
		path:    path,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Run calls fn after every change until ctx is cancelled. A failing fn is
// logged and does not stop the watch.
func (t *Trigger) Run(ctx context.Context, fn func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so replaced files are still seen.
	if err := watcher.Add(filepath.Dir(t.path)); err != nil {
		return fmt.Errorf("watching %s: %w", t.path, err)
	}
	logger.Info("Watching %s for changes", t.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !t.matches(event) {
				continue
			}
			logger.Debug("change: %s %s", event.Op, event.Name)

			// Wait only fails when ctx ends before the next slot.
			if err := t.limiter.Wait(ctx); err != nil {
				return nil
			}
			drain(watcher.Events)

			if err := fn(ctx); err != nil {
				logger.Warn("rebuild failed: %v", err)
			}
		}
	}
}

// matches reports whether event changes the watched file.
func (t *Trigger) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	base := filepath.Clean(t.path)
	return name == base || name == base+".wal" || name == base+"-wal"
}

// drain discards events already queued.
func drain(events <-chan fsnotify.Event) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
