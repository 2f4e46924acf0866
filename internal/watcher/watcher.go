// Package watcher reloads the saved networks whenever the networks file changes.
package watcher

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when no debounce is configured
const DefaultDebounce = 500 * time.Millisecond

// Importer replaces the saved networks with the contents of a file
type Importer interface {
	ImportFile(ctx context.Context, path, format string) (int, error)
}

// Watcher re-imports a networks file after it settles
type Watcher struct {
	path     string
	format   string
	importer Importer
	debounce time.Duration

	mu      sync.Mutex
	reloads int
}

// New creates a watcher for the networks file at path
func New(path, format string, importer Importer) *Watcher {
	return &Watcher{
		path:     path,
		format:   format,
		importer: importer,
		debounce: DefaultDebounce,
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Reloads returns how many imports the watcher has run
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

// Watch blocks until ctx is cancelled, importing the file after each burst
// of writes.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	// Editors often replace the file, so watch its directory
	dir := filepath.Dir(w.path)
	filename := filepath.Base(w.path)
	if err := fsw.Add(dir); err != nil {
		return err
	}

	log.Printf("Watching %s for changes", w.path)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() { w.reload(ctx) })

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	n, err := w.importer.ImportFile(ctx, w.path, w.format)
	if err != nil {
		// Keep serving the last good set
		log.Printf("Failed to reload %s: %v", w.path, err)
		return
	}

	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()
	log.Printf("Reloaded %d networks from %s", n, w.path)
}
