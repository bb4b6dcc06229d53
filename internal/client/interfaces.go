// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-note-sync/models"
)

// Client defines the lifecycle contract of the sync daemon.
type Client interface {
	// Run starts the background parts and blocks until ctx is done.
	Run(ctx context.Context) error

	// SyncOnce runs a single pass without starting the background parts.
	SyncOnce(ctx context.Context, trigger models.SyncTrigger) (models.SyncResult, error)

	// Close releases the state store.
	Close() error
}
