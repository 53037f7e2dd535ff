// Package watch monitors the source dataset files for changes using
// fsnotify, emitting a debounced reload signal consumed by the interactive
// explorer. A dataset refresh (re-downloading neos.csv or cad.json in
// place) arrives as a burst of write events; the debounce collapses the
// burst into one reload.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the directories containing the dataset files.
type Watcher struct {
	Reloads <-chan string // Read-only external channel; carries the changed path.

	files   map[string]bool
	reloads chan string
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// New creates a watcher for the given dataset files. The parent directory
// of each file is watched, since editors and downloaders typically replace
// files rather than write them in place.
func New(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		files[abs] = true
	}

	ch := make(chan string, 4)
	w := &Watcher{
		Reloads: ch,
		files:   files,
		reloads: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	return w, nil
}

// Start begins watching. Each watched file's parent directory is added
// once.
func (w *Watcher) Start() error {
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit.
	close(w.reloads)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: track last event time per file.
	const debounce = 200 * time.Millisecond
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					w.reloads <- file
				}
				return
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending[abs] = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= debounce {
					w.reloads <- file
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the explorer just won't reload.
		}
	}
}
