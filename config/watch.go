package config

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/navgrid/core"
)

// Reload carries a freshly loaded configuration or the reason it was rejected
type Reload struct {
	Config *Config
	Err    error
}

// Watcher reloads a config file after writes settle
// The containing directory is watched so editor rename-on-save is seen
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	events  chan Reload
	closeCh chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// Watch starts watching path; bursts of events within debounce produce one Reload
func Watch(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		watcher:  fw,
		logger:   logger,
		events:   make(chan Reload, 1),
		closeCh:  make(chan struct{}),
	}
	w.wg.Add(1)
	core.Go(func() {
		defer w.wg.Done()
		w.run()
	})
	return w, nil
}

// Events delivers reload results; closed after Close
func (w *Watcher) Events() <-chan Reload {
	return w.events
}

// Close stops watching and waits for the loop to exit
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.events)

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", "error", err)

		case <-timer.C:
			cfg, err := Load(w.path)
			if err != nil {
				w.logger.Warn("config reload rejected", "path", w.path, "error", err)
			} else {
				w.logger.Info("config reloaded", "path", w.path)
			}
			select {
			case w.events <- Reload{Config: cfg, Err: err}:
			case <-w.closeCh:
				return
			}

		case <-w.closeCh:
			return
		}
	}
}
