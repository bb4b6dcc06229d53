// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// StateStore persists the state that must survive between sync passes and
// process restarts: the heading cursor and the ids of records that were
// written to the document but not yet acknowledged by the backend.
type StateStore interface {
	// GetCursor returns the persisted cursor, or the zero cursor when
	// nothing was ever written.
	GetCursor(ctx context.Context) (models.SyncCursor, error)

	// SaveCursor replaces the persisted cursor.
	SaveCursor(ctx context.Context, cursor models.SyncCursor) error

	// MarkWritten records that recordID has been appended to the document.
	// Marking an already marked id is not an error.
	MarkWritten(ctx context.Context, recordID string) error

	// IsWritten reports whether recordID was marked and not cleared since.
	IsWritten(ctx context.Context, recordID string) (bool, error)

	// ClearWritten forgets ids once the backend has acknowledged them.
	ClearWritten(ctx context.Context, ids []string) error

	// Close releases the underlying database.
	Close() error
}
