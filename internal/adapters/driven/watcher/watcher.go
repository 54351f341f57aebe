// Package watcher monitors a drop folder for new documents using fsnotify.
// Files placed in the folder are reported once writes have settled, so a
// document still being copied is not picked up half-written.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/opensquare/opensquare-cli/internal/core/ports/driven"
	"github.com/opensquare/opensquare-cli/internal/logger"
)

// Ensure FolderWatcher implements the interface.
var _ driven.DropFolderWatcher = (*FolderWatcher)(nil)

// settleDelay is how long a file must go without writes before it is
// considered complete and reported.
const settleDelay = 500 * time.Millisecond

// defaultExtensions mirrors the file types the backend accepts.
var defaultExtensions = []string{".pdf", ".xlsx", ".xls", ".csv"}

// FolderWatcher reports documents dropped into a watched folder.
type FolderWatcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
	settle     time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewFolderWatcher creates a watcher for the given file extensions.
// With no extensions it watches the document types the backend accepts.
func NewFolderWatcher(extensions []string) (*FolderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if len(extensions) == 0 {
		extensions = defaultExtensions
	}

	return &FolderWatcher{
		watcher:    w,
		extensions: extensions,
		settle:     settleDelay,
		pending:    make(map[string]*time.Timer),
	}, nil
}

// Watch starts monitoring dir and returns a channel of settled file
// paths. The channel closes when ctx is cancelled or the watcher stops.
func (w *FolderWatcher) Watch(ctx context.Context, dir string) (<-chan string, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	paths := make(chan string, 16)

	go func() {
		defer close(paths)
		for {
			select {
			case <-ctx.Done():
				w.cancelPending()
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					w.cancelPending()
					return
				}
				if !w.accepts(event.Name) {
					continue
				}
				switch {
				case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
					w.schedule(ctx, event.Name, paths)
				case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
					w.forget(event.Name)
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					w.cancelPending()
					return
				}
				logger.Warn("folder watcher error: %v", err)
			}
		}
	}()

	return paths, nil
}

// Stop closes the underlying watcher.
func (w *FolderWatcher) Stop() error {
	return w.watcher.Close()
}

// schedule arms the settle timer for path, resetting it if writes are
// still arriving.
func (w *FolderWatcher) schedule(ctx context.Context, path string, paths chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.settle)
		return
	}

	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case paths <- path:
		case <-ctx.Done():
		}
	})
}

// forget drops the settle timer for a removed or renamed file.
func (w *FolderWatcher) forget(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *FolderWatcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

// accepts reports whether path has a watched extension.
func (w *FolderWatcher) accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
