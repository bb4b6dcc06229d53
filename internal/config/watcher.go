// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-note-sync/internal/logger"
)

// DefaultDebounce collapses the burst of events an editor produces for a
// single save.
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc receives every configuration that was reloaded successfully.
type ReloadFunc func(cfg *ClientConfig)

// Watcher reloads the JSON config file when it changes on disk.
type Watcher struct {
	path     string
	load     func() (*ClientConfig, error)
	debounce time.Duration

	mu        sync.Mutex
	callbacks []ReloadFunc
	timer     *time.Timer

	logger *logger.Logger
}

// NewWatcher returns a watcher for path. load rebuilds the configuration
// from all sources; it is called once per debounced change.
func NewWatcher(path string, load func() (*ClientConfig, error), logger *logger.Logger) *Watcher {
	return &Watcher{
		path:     filepath.Clean(path),
		load:     load,
		debounce: DefaultDebounce,
		logger:   logger,
	}
}

// OnReload registers fn to be called after each successful reload.
func (w *Watcher) OnReload(fn ReloadFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// Start begins watching and returns once the watch is registered. The
// directory is watched rather than the file because editors replace files
// by renaming. Watching stops when ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err = fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch config file %s: %w", w.path, err)
	}

	go w.loop(ctx, fsw)
	return nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("config file changed")
			w.scheduleReload()

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("config watcher error")
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) reload() {
	cfg, err := w.load()
	if err != nil {
		w.logger.Err(err).Str("path", w.path).Msg("config reload failed, keeping the previous configuration")
		return
	}
	w.logger.Info().Str("path", w.path).Msg("config reloaded")

	w.mu.Lock()
	callbacks := make([]ReloadFunc, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
}
