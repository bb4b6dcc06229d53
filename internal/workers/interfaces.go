// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, the timer-driven [SyncWorker] and a
// Workers aggregate that allows running multiple workers in a unified way.
package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-sync/models"
)

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns; the work happens in goroutines owned by
// the worker until ctx is done or Stop is called. Stop blocks until those
// goroutines have exited.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// Syncer runs one sync pass. It is satisfied by service.SyncService.
type Syncer interface {
	Sync(ctx context.Context, trigger models.SyncTrigger) (models.SyncResult, error)
}

// SyncWorker triggers sync passes on a timer.
type SyncWorker interface {
	Worker

	// Reconfigure replaces the timer. The old ticker is cancelled and a new
	// one created exactly once; unchanged values are a no-op. A non-positive
	// interval or an empty token leaves no ticker running.
	Reconfigure(interval time.Duration, token string)

	// Scheduled reports whether a ticker is currently running.
	Scheduled() bool
}
