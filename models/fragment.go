// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Fragment is the rendered output of a single record, ready to be appended
// to the target document. It lives only for the duration of one record.
type Fragment struct {
	// RecordID is the ID of the originating record.
	RecordID string

	// Timestamp is the capture time of the originating record and drives
	// heading grouping.
	Timestamp time.Time

	// Body is the markdown appended to the document.
	Body string

	// Warning is non-empty when the transformer degraded (for example the
	// payload could not be decrypted) but still produced content.
	Warning string

	// Failed is true when Body is a failure placeholder.
	Failed bool
}

// SyncCursor is the persisted position used to decide whether a new heading
// bucket must be opened.
type SyncCursor struct {
	// LastWrittenTimestamp is the capture time, in epoch milliseconds, of the
	// record that opened the most recent heading. Zero means nothing has been
	// written yet.
	LastWrittenTimestamp int64
}

// IsZero reports whether no heading was ever written.
func (c SyncCursor) IsZero() bool {
	return c.LastWrittenTimestamp == 0
}
