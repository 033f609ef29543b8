// Package watch reloads the displayed image when its file changes on disk.
package watch

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"imageviewer/internal/diag"
	"imageviewer/internal/imagefile"
	"imageviewer/internal/input"
)

// DefaultDebounce groups the bursts of events editors produce on save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher posts a freshly decoded image whenever the file is written or
// replaced.
type Watcher struct {
	path     string
	queue    input.Poster
	log      *diag.Logger
	debounce time.Duration
	load     func(string) (*image.NRGBA, error)

	watcher *fsnotify.Watcher
}

// New watches the directory holding path. Watching the directory rather
// than the file keeps working when the file is replaced by a rename.
func New(path string, queue input.Poster, log *diag.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		queue:    queue,
		log:      log,
		debounce: DefaultDebounce,
		load:     imagefile.Load,
		watcher:  fsw,
	}, nil
}

// Run processes file events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debugf("file event: %s", ev)
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Printf("Warning: file watcher: %v", err)

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) reload() {
	img, err := w.load(w.path)
	if err != nil {
		// Half-written files fail to decode; the next write retries.
		w.log.Printf("Warning: reload of %s failed: %v", w.path, err)
		return
	}
	b := img.Bounds()
	w.log.Debugf("reloaded %s (%dx%d)", w.path, b.Dx(), b.Dy())
	if !w.queue.Post(input.ImageEvent(img)) {
		w.log.Debugf("event queue full, dropped reload")
	}
}
