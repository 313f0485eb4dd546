// Package watch reports changes to the directory being browsed.
package watch

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/LFroesch/trio/internal/logger"
)

// DefaultDelay coalesces bursts such as a recursive copy into one refresh.
const DefaultDelay = 100 * time.Millisecond

// Watcher follows a single directory at a time.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	changes   chan string
	delay     time.Duration

	mu     sync.Mutex
	dir    string
	timer  *time.Timer
	closed bool
}

// New starts a watcher with nothing watched yet.
func New(delay time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		changes:   make(chan string, 1),
		delay:     delay,
	}
	go w.loop()
	return w, nil
}

// Changes yields the watched directory after each debounced burst of
// events. It is closed by Close.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Watch switches to dir, dropping the previous directory.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("watcher closed")
	}
	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		_ = w.fsWatcher.Remove(w.dir)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		w.dir = ""
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	return nil
}

// Close stops the watcher and closes Changes.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
		}
		close(w.changes)
		w.mu.Unlock()
	}()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.schedule()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		if w.closed || w.dir == "" {
			return
		}
		select {
		case w.changes <- w.dir:
		default:
		}
	})
}
