// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/models"
)

// spySyncer counts passes per trigger.
type spySyncer struct {
	mu       sync.Mutex
	triggers []models.SyncTrigger
	calls    atomic.Int32
	err      error
	block    chan struct{}
}

func (s *spySyncer) Sync(ctx context.Context, trigger models.SyncTrigger) (models.SyncResult, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.triggers = append(s.triggers, trigger)
	s.mu.Unlock()

	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return models.SyncResult{}, ctx.Err()
		}
	}
	return models.SyncResult{}, s.err
}

func (s *spySyncer) seen() []models.SyncTrigger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SyncTrigger(nil), s.triggers...)
}

func TestSyncWorker_TicksUntilStopped(t *testing.T) {
	spy := &spySyncer{}
	w := NewSyncWorker(spy, SyncWorkerOptions{Interval: 20 * time.Millisecond, Token: "token"}, logger.Nop())

	w.Run(context.Background())
	assert.True(t, w.Scheduled())

	require.Eventually(t, func() bool { return spy.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	w.Stop()
	assert.False(t, w.Scheduled())
	after := spy.calls.Load()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, after, spy.calls.Load())

	for _, trigger := range spy.seen() {
		assert.Equal(t, models.TriggerTimer, trigger)
	}
}

func TestSyncWorker_Disabled(t *testing.T) {
	tests := []struct {
		name string
		opts SyncWorkerOptions
	}{
		{name: "zero interval", opts: SyncWorkerOptions{Interval: 0, Token: "token"}},
		{name: "negative interval", opts: SyncWorkerOptions{Interval: -time.Second, Token: "token"}},
		{name: "empty token", opts: SyncWorkerOptions{Interval: 10 * time.Millisecond, Token: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &spySyncer{}
			w := NewSyncWorker(spy, tt.opts, logger.Nop())

			w.Run(context.Background())
			defer w.Stop()

			assert.False(t, w.Scheduled())
			time.Sleep(60 * time.Millisecond)
			assert.Zero(t, spy.calls.Load())
		})
	}
}

func TestSyncWorker_SyncOnLoad(t *testing.T) {
	spy := &spySyncer{}
	w := NewSyncWorker(spy, SyncWorkerOptions{SyncOnLoad: true}, logger.Nop())

	w.Run(context.Background())
	w.Stop()

	assert.Equal(t, []models.SyncTrigger{models.TriggerOnLoad}, spy.seen())
}

func TestSyncWorker_Reconfigure(t *testing.T) {
	spy := &spySyncer{}
	w := NewSyncWorker(spy, SyncWorkerOptions{Interval: 0, Token: "token"}, logger.Nop())
	w.Run(context.Background())
	defer w.Stop()

	require.False(t, w.Scheduled())

	w.Reconfigure(20*time.Millisecond, "token")
	assert.True(t, w.Scheduled())
	require.Eventually(t, func() bool { return spy.calls.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)

	w.Reconfigure(20*time.Millisecond, "")
	assert.False(t, w.Scheduled())
	time.Sleep(30 * time.Millisecond)
	after := spy.calls.Load()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, after, spy.calls.Load())
}

func TestSyncWorker_ReconfigureUnchangedKeepsTicker(t *testing.T) {
	spy := &spySyncer{}
	w := NewSyncWorker(spy, SyncWorkerOptions{Interval: 40 * time.Millisecond, Token: "token"}, logger.Nop())
	w.Run(context.Background())
	defer w.Stop()

	// a ticker recreated on every call would never fire
	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		w.Reconfigure(40*time.Millisecond, " token ")
		time.Sleep(10 * time.Millisecond)
	}

	assert.Positive(t, spy.calls.Load())
}

func TestSyncWorker_ReconfigureBeforeRun(t *testing.T) {
	spy := &spySyncer{}
	w := NewSyncWorker(spy, SyncWorkerOptions{}, logger.Nop())

	w.Reconfigure(10*time.Millisecond, "token")
	assert.False(t, w.Scheduled())

	w.Run(context.Background())
	defer w.Stop()
	assert.True(t, w.Scheduled())
}

func TestSyncWorker_ErrorsDoNotStopTicker(t *testing.T) {
	spy := &spySyncer{err: service.ErrSyncInProgress}
	w := NewSyncWorker(spy, SyncWorkerOptions{Interval: 10 * time.Millisecond, Token: "token"}, logger.Nop())

	w.Run(context.Background())
	defer w.Stop()

	require.Eventually(t, func() bool { return spy.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestSyncWorker_CancelAbortsPassInFlight(t *testing.T) {
	spy := &spySyncer{block: make(chan struct{})}
	w := NewSyncWorker(spy, SyncWorkerOptions{SyncOnLoad: true}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	w.Run(ctx)
	require.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after the context was cancelled")
	}
}
