// Package settings reloads configuration when the .env file it came from
// changes on disk.
package settings

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/stopwatch-tui/internal/config"
	"github.com/j-veylop/stopwatch-tui/internal/logger"
)

const debounceInterval = 100 * time.Millisecond

// EventType defines the type of settings event.
type EventType int

const (
	// EventReloaded carries the config read after the env file changed.
	EventReloaded EventType = iota
	// EventError reports a reload that failed; the previous config stays.
	EventError
)

// Event carries a freshly loaded config or the error that prevented it.
type Event struct {
	Type   EventType
	Config *config.Config
	Error  error
}

// Loader reads a config from an env file path.
type Loader func(envFile string) (*config.Config, error)

// Watcher watches one env file. A Watcher for an empty path is inert.
type Watcher struct {
	mu            sync.Mutex
	filePath      string
	load          Loader
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
	closeOnce     sync.Once
}

// New starts watching envFile. Pass nil to use config.LoadFrom.
func New(envFile string, load Loader) (*Watcher, error) {
	if load == nil {
		load = config.LoadFrom
	}

	w := &Watcher{
		filePath:  envFile,
		load:      load,
		eventChan: make(chan Event, 10),
		stopChan:  make(chan struct{}),
	}

	if envFile == "" {
		return w, nil
	}

	if err := w.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start settings watcher: %w", err)
	}

	return w, nil
}

// Events returns the channel reloaded configs are delivered on.
func (w *Watcher) Events() <-chan Event {
	return w.eventChan
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.filePath
}

func (w *Watcher) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	// Watch the directory so editors that replace the file are still seen
	dir := filepath.Dir(w.filePath)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go w.watchLoop()
	return nil
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(w.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.mu.Lock()
				if w.debounceTimer != nil {
					w.debounceTimer.Stop()
				}
				w.debounceTimer = time.AfterFunc(debounceInterval, w.reload)
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendEvent(Event{Type: EventError, Error: err})

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.load(w.filePath)
	if err != nil {
		logger.Warn("settings reload failed", "path", w.filePath, "error", err)
		w.sendEvent(Event{Type: EventError, Error: err})
		return
	}

	logger.Info("settings reloaded", "path", w.filePath)
	w.sendEvent(Event{Type: EventReloaded, Config: cfg})
}

// sendEvent sends an event to the event channel non-blocking.
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.eventChan <- event:
	case <-w.stopChan:
	default:
		logger.Warn("settings event dropped", "type", event.Type)
	}
}

// Close stops the file watcher and cleans up resources.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stopChan)

		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()

		if w.watcher != nil {
			err = w.watcher.Close()
		}
	})
	return err
}
