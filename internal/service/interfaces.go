// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/models"
)

// PassContext carries what every record of one pass shares: the config
// snapshot and the key material derived from its salt.
type PassContext struct {
	Config models.SyncConfig

	// Keys is valid only when KeysErr is nil. A missing or short salt does
	// not abort the pass; encrypted records degrade instead.
	Keys    crypto.DecryptionContext
	KeysErr error
}

// ContentTransformer renders one record into a fragment.
type ContentTransformer interface {
	// Transform dispatches on record.ContentType. Handled failures of a
	// branch are reported inside the fragment (Warning, Failed) and never as
	// an error; the error is reserved for unsupported content types, a
	// cancelled context and a panicking handler.
	Transform(ctx context.Context, record models.NoteRecord, pass PassContext) (models.Fragment, error)
}

// DocumentWriter appends fragments to the target document and maintains
// heading buckets.
type DocumentWriter interface {
	// WriteFragment appends a "## YYYY-MM-DD HH:MM" heading first when cursor
	// is zero or the fragment is more than five minutes after it, persisting
	// the new cursor, and then appends the fragment body. The returned cursor
	// is valid even when err is not nil.
	WriteFragment(ctx context.Context, documentID string, fragment models.Fragment, cursor models.SyncCursor) (models.SyncCursor, error)
}

// SyncService runs sync passes. At most one pass runs at a time.
type SyncService interface {
	// Sync runs one pass. It returns [ErrSyncInProgress] immediately when
	// another pass is running and [ErrConfiguration] when the configuration
	// is incomplete. Any other error means the pass was aborted; the result
	// is filled in as far as the pass got.
	Sync(ctx context.Context, trigger models.SyncTrigger) (models.SyncResult, error)

	// UpdateConfig replaces the configuration used from the next pass on.
	UpdateConfig(cfg models.SyncConfig)

	// Config returns the configuration of the next pass.
	Config() models.SyncConfig

	// Status returns the current state and the result of the last finished
	// pass, if any.
	Status() Status

	// Quota returns the account plan of the configured token.
	Quota(ctx context.Context) (models.Quota, error)
}

// ImageLocalizer replaces the remote images of a markdown document with
// uploaded assets. Images that could not be localized keep their URL and
// are reported in the returned errors.
type ImageLocalizer interface {
	Localize(ctx context.Context, markdown string) (string, []error)
}

// Notifier shows short messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Status is a point-in-time view of the sync service.
type Status struct {
	State      models.SyncState   `json:"state"`
	Running    bool               `json:"running"`
	Configured bool               `json:"configured"`
	LastResult *models.SyncResult `json:"last_result,omitempty"`
}
