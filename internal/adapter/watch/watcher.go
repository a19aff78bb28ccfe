// Package watch monitors a single document file for changes.
package watch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher emits a signal whenever one specific file is rewritten. The parent
// directory is watched rather than the file itself so that editors which
// replace the file (write to temp, rename over) are still observed.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
}

// New creates a watcher for the given file.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{watcher: w, path: abs}, nil
}

// Watch emits an element on the returned channel each time the file is
// written or created. The channel closes when ctx is cancelled or the
// watcher is closed.
func (w *Watcher) Watch(ctx context.Context) <-chan struct{} {
	changes := make(chan struct{}, 1)

	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Name != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
					// A change is already pending; coalesce.
				}
			case _, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
