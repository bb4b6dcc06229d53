// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the HTTP clients the sync pipeline talks to.
//
// [BackendAdapter] consumes the note-push backend REST API: it lists pending
// records, downloads referenced images and link snapshots and acknowledges
// the records that were written. [KernelAdapter] consumes the document-store
// kernel API: it appends blocks, creates documents, resolves paths and
// uploads assets.
//
// Both implementations are built on resty. Status codes and envelope codes
// are mapped to the sentinel values in errors.go so that callers can use
// [errors.Is] without knowing anything about HTTP.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// BackendAdapter is the note-push backend client.
type BackendAdapter interface {
	// SetToken replaces the bearer token used by subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently in use.
	Token() string

	// ListPendingRecords returns every record not yet acknowledged, in the
	// order the backend sent them. An empty queue yields an empty slice.
	ListPendingRecords(ctx context.Context) ([]models.NoteRecord, error)

	// FetchImageContent downloads the binary behind reference (an absolute
	// URL or a path relative to the backend address). Fails with
	// [ErrMissingFilename] when the response carries no file name.
	FetchImageContent(ctx context.Context, reference string) (models.ImageContent, error)

	// FetchLinkContent downloads the title and markdown snapshot of a link
	// record.
	FetchLinkContent(ctx context.Context, recordID string) (models.LinkContent, error)

	// Acknowledge marks ids as pulled so that the backend stops sending them.
	Acknowledge(ctx context.Context, ids []string) error

	// GetQuota returns the plan and usage of the token owner.
	GetQuota(ctx context.Context) (models.Quota, error)
}

// DocumentStore is the part of the kernel API that edits documents.
type DocumentStore interface {
	// AppendBlock appends markdown as a new child block of parentID.
	AppendBlock(ctx context.Context, parentID, markdown string) error

	// CreateDocument creates a document at the human-readable path inside
	// notebookID and returns its id.
	CreateDocument(ctx context.Context, notebookID, path, markdown string) (string, error)

	// ResolvePathByID returns the human-readable path of document id.
	ResolvePathByID(ctx context.Context, id string) (string, error)
}

// AssetStore is the part of the kernel API that stores binaries.
type AssetStore interface {
	// UploadAsset stores data under name and returns the asset path to
	// reference from markdown.
	UploadAsset(ctx context.Context, name string, data []byte) (string, error)
}

// KernelAdapter is a full document-store kernel client.
type KernelAdapter interface {
	DocumentStore
	AssetStore
}
