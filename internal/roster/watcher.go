package roster

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a roster file for changes and reloads it. Dataset
// rebuilds touch the file several times in quick succession, so events
// are debounced before reloading.
type Watcher struct {
	path           string
	reloadCallback func([]Character)
	debounce       time.Duration
	fw             *fsnotify.Watcher
	stopOnce       sync.Once
	stopChan       chan struct{}
}

// WatcherConfig configures a roster watcher.
type WatcherConfig struct {
	Path           string
	ReloadCallback func([]Character)
	Debounce       time.Duration // defaults to 500ms
}

// NewWatcher creates a watcher for the given roster file.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Debounce == 0 {
		config.Debounce = 500 * time.Millisecond
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	// Watch the directory, not the file: editors and downloaders replace
	// the file by rename, which drops a watch placed on the file itself.
	if err := fw.Add(filepath.Dir(config.Path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching roster directory: %w", err)
	}

	return &Watcher{
		path:           config.Path,
		reloadCallback: config.ReloadCallback,
		debounce:       config.Debounce,
		fw:             fw,
		stopChan:       make(chan struct{}),
	}, nil
}

// Start runs the watch loop until the context is cancelled or Close is
// called.
func (w *Watcher) Start(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	base := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Printf("Roster watcher error: %v", err)

		case <-fire:
			timer = nil
			fire = nil
			w.reload()
		}
	}
}

// Close stops the watcher. Safe to call multiple times.
func (w *Watcher) Close() error {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
	return w.fw.Close()
}

func (w *Watcher) reload() {
	chars, err := LoadFile(w.path)
	if err != nil {
		log.Printf("Roster reload failed: %v", err)
		return
	}
	log.Printf("Roster reloaded: %d characters", len(chars))
	if w.reloadCallback != nil {
		w.reloadCallback(chars)
	}
}
