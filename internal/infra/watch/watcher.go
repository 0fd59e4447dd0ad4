// Package watch re-runs scaffolding whenever the task spec file changes.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"planforge/internal/domain"
)

// RunFunc is invoked after the task spec settles following a change.
type RunFunc func(ctx context.Context) error

// Watcher monitors the plan directory and triggers a run when the task
// spec file is written. Editors that save via rename still produce an
// event for the final name, so the directory is watched rather than the
// file itself.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   domain.Logger
	run      RunFunc
	planDir  string
	specPath string
	debounce time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}

	mu      sync.Mutex
	running bool
}

// New creates a watcher over planDir that invokes run when the task
// spec changes.
func New(planDir string, logger domain.Logger, run RunFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  fw,
		logger:   logger,
		run:      run,
		planDir:  planDir,
		specPath: filepath.Clean(domain.TaskSpecPath(planDir)),
		debounce: 500 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking; the event loop runs in a
// goroutine until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.planDir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.logger.Info("", "watch", "watching "+w.specPath)

	go w.loop(ctx)
	return nil
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	// Rapid saves collapse into one run: each event restamps lastEvent
	// and the ticker fires the run once the spec has settled.
	settle := time.NewTicker(100 * time.Millisecond)
	defer settle.Stop()

	var (
		dirty     bool
		lastEvent time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isSpecEvent(event) {
				continue
			}
			dirty = true
			lastEvent = time.Now()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("", "watch", "watch error: "+err.Error())

		case <-settle.C:
			if !dirty || time.Since(lastEvent) < w.debounce {
				continue
			}
			dirty = false
			w.logger.Info("", "watch", "task spec changed, rerunning")
			if err := w.run(ctx); err != nil {
				w.logger.Error("", "watch", "run failed: "+err.Error())
			}
		}
	}
}

// isSpecEvent reports whether the event is a content change of the task
// spec file. Chmod and removal are ignored; a removed spec produces no
// run until it is written again.
func (w *Watcher) isSpecEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.specPath {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}
