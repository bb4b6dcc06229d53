// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

const (
	// HeadingLayout formats the timestamp of a heading bucket.
	HeadingLayout = "2006-01-02 15:04"

	// HeadingGap is the largest distance between a record and the heading
	// it is grouped under.
	HeadingGap = 300 * time.Second
)

type documentWriter struct {
	docs     adapter.DocumentStore
	state    store.StateStore
	location *time.Location

	logger *logger.Logger
}

// NewDocumentWriter returns a [DocumentWriter] that formats headings in
// location (time.Local when nil).
func NewDocumentWriter(docs adapter.DocumentStore, state store.StateStore, location *time.Location, logger *logger.Logger) DocumentWriter {
	if location == nil {
		location = time.Local
	}
	return &documentWriter{docs: docs, state: state, location: location, logger: logger}
}

// NeedsHeading reports whether a record at ts (epoch ms) opens a new heading
// bucket after cursor. A record older than the cursor never does.
func NeedsHeading(cursor models.SyncCursor, ts int64) bool {
	return cursor.IsZero() || ts-cursor.LastWrittenTimestamp > HeadingGap.Milliseconds()
}

// WriteFragment implements [DocumentWriter].
func (w *documentWriter) WriteFragment(ctx context.Context, documentID string, fragment models.Fragment, cursor models.SyncCursor) (models.SyncCursor, error) {
	log := logger.FromContext(ctx)
	ts := fragment.Timestamp.UnixMilli()

	if NeedsHeading(cursor, ts) {
		heading := "## " + fragment.Timestamp.In(w.location).Format(HeadingLayout)
		if err := w.docs.AppendBlock(ctx, documentID, heading); err != nil {
			return cursor, fmt.Errorf("append heading: %w", err)
		}

		cursor = models.SyncCursor{LastWrittenTimestamp: ts}
		if err := w.state.SaveCursor(ctx, cursor); err != nil {
			return cursor, fmt.Errorf("persist cursor: %w", err)
		}
		log.Debug().Str("heading", heading).Msg("heading bucket opened")
	}

	if err := w.docs.AppendBlock(ctx, documentID, fragment.Body); err != nil {
		return cursor, fmt.Errorf("append body of record %s: %w", fragment.RecordID, err)
	}

	return cursor, nil
}
