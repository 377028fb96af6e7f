package mcpserver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"wirelens/internal/analysis"
	"wirelens/pkg/logging"
)

// Watcher marks analysis runs stale when source files under a watched root
// change. It watches directories recursively; fsnotify itself is per-directory,
// so new subdirectories are added as their create events arrive.
type Watcher struct {
	store   *analysis.Store
	fsw     *fsnotify.Watcher
	mu      sync.Mutex
	roots   []string
	started bool
}

// NewWatcher creates a watcher bound to the given run store. Nothing is
// watched until Watch is called for a root.
func NewWatcher(store *analysis.Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{store: store, fsw: fsw}, nil
}

// Run starts the event loop. It returns immediately; the loop exits when the
// context is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()

	go w.loop(ctx)
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Warn("Watcher", "filesystem watch error: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	// A new directory under a watched root must be watched too, or changes
	// inside it go unseen.
	if event.Op&fsnotify.Create != 0 && w.isDir(event.Name) {
		if err := w.fsw.Add(event.Name); err != nil {
			logging.Warn("Watcher", "cannot watch new directory %s: %v", event.Name, err)
		}
		return
	}

	if !relevantSource(event.Name) {
		return
	}
	logging.Debug("Watcher", "%s changed, marking containing runs stale", event.Name)
	w.store.MarkStaleUnder(event.Name)
}

func (w *Watcher) isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// relevantSource reports whether a change to the given path can invalidate an
// analysis. Only the file kinds the scanner reads matter.
func relevantSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".java", ".xml":
		return true
	default:
		return false
	}
}

// Watch registers a root and all directories beneath it. Roots already being
// watched are skipped. Unreadable subdirectories are logged and skipped; the
// rest of the tree is still watched.
func (w *Watcher) Watch(root string) error {
	w.mu.Lock()
	for _, r := range w.roots {
		if r == root {
			w.mu.Unlock()
			return nil
		}
	}
	w.roots = append(w.roots, root)
	w.mu.Unlock()

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logging.Warn("Watcher", "not watching %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			logging.Warn("Watcher", "not watching %s: %v", path, addErr)
			return filepath.SkipDir
		}
		return nil
	})
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
