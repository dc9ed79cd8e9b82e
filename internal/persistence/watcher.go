package persistence

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/docktree/docktree/internal/logging"
	"github.com/docktree/docktree/pkg/dock"
)

// Watcher reloads a layout file whenever it changes on disk and hands the
// fresh document to a callback. Editors and the atomic file store both
// replace files by rename, so the parent directory is watched rather than
// the file itself.
type Watcher struct {
	store *FileStore
	path  string

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	onChange func(dock.Document)
}

// NewWatcher creates a watcher for the layout file at path.
func NewWatcher(store *FileStore, path string) *Watcher {
	return &Watcher{store: store, path: path}
}

// OnChange registers the callback invoked with each reloaded document.
func (w *Watcher) OnChange(fn func(dock.Document)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start begins watching. It returns immediately; reloads run on the
// watcher's goroutine until the context is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil // already watching
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create layout watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("watch layout directory: %w", err)
	}
	w.watcher = fw

	go w.run(ctx, fw)
	return nil
}

// Stop ends watching and releases the underlying notifier.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		_ = w.watcher.Close()
		w.watcher = nil
	}
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher) {
	log := logging.FromContext(ctx)
	target := filepath.Clean(w.path)

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
				!event.Op.Has(fsnotify.Rename) {
				continue
			}
			log.Debug().Str("op", event.Op.String()).Str("file", event.Name).
				Msg("layout file change detected")

			doc, err := w.store.Load(ctx, w.path)
			if err != nil {
				log.Warn().Err(err).Msg("failed to reload layout")
				continue
			}
			w.notify(doc)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("layout watcher error")
		}
	}
}

func (w *Watcher) notify(doc dock.Document) {
	w.mu.Lock()
	fn := w.onChange
	w.mu.Unlock()
	if fn != nil {
		fn(doc)
	}
}
