// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/models"
)

// SyncWorkerOptions configure [NewSyncWorker].
type SyncWorkerOptions struct {
	Interval time.Duration
	Token    string

	// SyncOnLoad runs one pass with the on-load trigger when Run is called.
	SyncOnLoad bool
}

type syncWorker struct {
	syncer     Syncer
	syncOnLoad bool

	mu       sync.Mutex
	base     context.Context
	cancel   context.CancelFunc
	interval time.Duration
	token    string
	wg       sync.WaitGroup

	logger *logger.Logger
}

// NewSyncWorker creates a worker that calls syncer.Sync on a ticker. The
// worker is idle until Run is called.
func NewSyncWorker(syncer Syncer, opts SyncWorkerOptions, logger *logger.Logger) SyncWorker {
	return &syncWorker{
		syncer:     syncer,
		syncOnLoad: opts.SyncOnLoad,
		interval:   opts.Interval,
		token:      strings.TrimSpace(opts.Token),
		logger:     logger,
	}
}

// Run implements [Worker]. Passes run with ctx, so cancelling it aborts a
// pass in flight; replacing the ticker does not.
func (w *syncWorker) Run(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.base = ctx
	if w.syncOnLoad {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.sync(ctx, models.TriggerOnLoad)
		}()
	}
	w.startLocked()
}

func (w *syncWorker) Reconfigure(interval time.Duration, token string) {
	token = strings.TrimSpace(token)

	w.mu.Lock()
	defer w.mu.Unlock()

	if interval == w.interval && token == w.token {
		return
	}

	w.logger.Info().
		Dur("old_interval", w.interval).
		Dur("new_interval", interval).
		Bool("token_set", token != "").
		Msg("sync timer reconfigured")

	w.stopLocked()
	w.interval, w.token = interval, token
	if w.base != nil {
		w.startLocked()
	}
}

func (w *syncWorker) Scheduled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}

// Stop implements [Worker]. It cancels the ticker and blocks until the
// ticker goroutine and any pass it started have exited. Safe to call when
// the worker is not running.
func (w *syncWorker) Stop() {
	w.mu.Lock()
	w.stopLocked()
	w.base = nil
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *syncWorker) startLocked() {
	if w.interval <= 0 || w.token == "" {
		w.logger.Info().Dur("interval", w.interval).Msg("sync timer disabled")
		return
	}

	tickCtx, cancel := context.WithCancel(w.base)
	w.cancel = cancel
	passCtx := w.base
	interval := w.interval

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-tickCtx.Done():
				return
			case <-t.C:
				w.sync(passCtx, models.TriggerTimer)
			}
		}
	}()
}

func (w *syncWorker) stopLocked() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *syncWorker) sync(ctx context.Context, trigger models.SyncTrigger) {
	_, err := w.syncer.Sync(ctx, trigger)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrSyncInProgress):
		w.logger.Debug().Str("trigger", string(trigger)).Msg("sync pass skipped, another pass is running")
	case errors.Is(err, service.ErrConfiguration):
		w.logger.Debug().Str("trigger", string(trigger)).Msg("sync pass skipped, not configured")
	default:
		w.logger.Warn().Err(err).Str("trigger", string(trigger)).Msg("sync pass failed")
	}
}
