package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Carmen-Shannon/oxy-lumen/common"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-reads a config file whenever it is written or recreated. Editors that save by
// rename replace the file, so the parent directory is watched and events are filtered by name.
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher

	changes chan Config
	errors  chan error
	done    chan struct{}

	closeOnce *sync.Once
	wg        *sync.WaitGroup
}

// NewWatcher starts watching path.
//
// Parameters:
//   - path: the config file to watch
//
// Returns:
//   - *Watcher: the running watcher
//   - error: error if the watch cannot be established
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:      abs,
		fsnotify:  fsWatch,
		changes:   make(chan Config, 1),
		errors:    make(chan error, 1),
		done:      make(chan struct{}),
		closeOnce: &sync.Once{},
		wg:        &sync.WaitGroup{},
	}
	w.wg.Add(1)
	go w.start()
	return w, nil
}

// Changes delivers each successfully parsed config. Only the latest pending config is kept.
func (w *Watcher) Changes() <-chan Config {
	return w.changes
}

// Errors delivers read, parse and watch errors. Only the latest pending error is kept.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsnotify.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) start() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path || !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				common.Logger().Warn("config reload rejected", "path", w.path, "err", err)
				sendLatest(w.errors, err)
				continue
			}
			common.Logger().Info("config reloaded", "path", w.path)
			sendLatest(w.changes, cfg)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			common.Logger().Error("config watcher error", "err", err)
			sendLatest(w.errors, err)

		case <-w.done:
			return
		}
	}
}

// sendLatest replaces any undelivered value in a one-slot channel with v.
func sendLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
