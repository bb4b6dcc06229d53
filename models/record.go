// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
	"time"
)

// ContentType is the closed set of payload encodings a captured record can
// carry. The value decides which transformer handler renders the record.
type ContentType string

const (
	// ContentText is plain text used verbatim.
	ContentText ContentType = "text"

	// ContentSecretText is text encrypted with the shared salt.
	ContentSecretText ContentType = "secretText"

	// ContentImage is a reference to an image stored on the backend.
	ContentImage ContentType = "image"

	// ContentSecretImage is a reference to an encrypted image envelope
	// stored on the backend.
	ContentSecretImage ContentType = "secretImage"

	// ContentLink is a saved web page; the body is fetched separately by
	// record ID.
	ContentLink ContentType = "link"
)

// ContentTypes lists every supported content type in a stable order.
var ContentTypes = []ContentType{
	ContentText,
	ContentSecretText,
	ContentImage,
	ContentSecretImage,
	ContentLink,
}

// Valid reports whether c is one of the supported content types.
func (c ContentType) Valid() bool {
	for _, known := range ContentTypes {
		if c == known {
			return true
		}
	}
	return false
}

// IsSecret reports whether payloads of this type are encrypted.
func (c ContentType) IsSecret() bool {
	return c == ContentSecretText || c == ContentSecretImage
}

// NoteRecord is one captured item pending synchronization. It is created by
// the backend and never mutated on the client.
type NoteRecord struct {
	// ID uniquely identifies the record on the backend. It is the value
	// sent back in the acknowledge call.
	ID string `json:"id"`

	// CreatedAt is the ISO-8601 capture time exactly as sent by the backend.
	CreatedAt string `json:"createdAt"`

	// Content is the opaque payload: plain text, ciphertext or a remote
	// reference depending on ContentType.
	Content string `json:"content"`

	// ContentType selects the rendering routine.
	ContentType ContentType `json:"contentType"`
}

var recordTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Timestamp parses CreatedAt. Layouts without a zone are interpreted in loc;
// a nil loc means UTC.
func (r NoteRecord) Timestamp(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	raw := strings.TrimSpace(r.CreatedAt)
	for _, layout := range recordTimeLayouts {
		if ts, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("record %s: unparsable createdAt %q", r.ID, r.CreatedAt)
}
