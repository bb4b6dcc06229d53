// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/internal/validators"
	"github.com/MKhiriev/go-note-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	recordsPath = "/api/v1/note/records"
	linksPath   = "/api/v1/note/links/{id}"
	quotaPath   = "/api/v1/user/quota"
)

type backendAdapter struct {
	client    *utils.HTTPClient
	validator validators.Validator

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewBackendAdapter constructs the resty implementation of [BackendAdapter].
// It normalises cfg.Address into a base URL, applies cfg.RequestTimeout and
// seeds the adapter with cfg.Token.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a URL.
func NewBackendAdapter(cfg config.ClientBackend, logger *logger.Logger) (BackendAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid backend address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	a := &backendAdapter{
		client:    client,
		validator: validators.NewRecordValidator(),
		logger:    logger,
	}
	a.SetToken(cfg.Token)
	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [BackendAdapter]. Surrounding whitespace is dropped.
func (b *backendAdapter) SetToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = strings.TrimSpace(token)
}

func (b *backendAdapter) Token() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.token
}

// ListPendingRecords implements [BackendAdapter] with
// GET /api/v1/note/records. A missing or null list is returned as an empty
// slice.
func (b *backendAdapter) ListPendingRecords(ctx context.Context) ([]models.NoteRecord, error) {
	var list models.RecordList
	if err := b.getEnvelope(ctx, recordsPath, nil, &list); err != nil {
		return nil, fmt.Errorf("list pending records: %w", err)
	}

	if list.List == nil {
		return []models.NoteRecord{}, nil
	}
	return list.List, nil
}

// FetchImageContent implements [BackendAdapter]. The file name is taken from
// the Content-Disposition header.
func (b *backendAdapter) FetchImageContent(ctx context.Context, reference string) (models.ImageContent, error) {
	resp, err := b.authedRequest(ctx).Get(strings.TrimSpace(reference))
	if err != nil {
		return models.ImageContent{}, fmt.Errorf("fetch image: %w: %w", ErrNetwork, err)
	}
	if err = mapBackendError(resp); err != nil {
		return models.ImageContent{}, fmt.Errorf("fetch image: %w", err)
	}

	name := filenameFromDisposition(resp.Header().Get("Content-Disposition"))
	if name == "" {
		return models.ImageContent{}, fmt.Errorf("fetch image: %w: %w", ErrNetwork, ErrMissingFilename)
	}

	return models.ImageContent{Name: name, Data: resp.Body()}, nil
}

// FetchLinkContent implements [BackendAdapter] with
// GET /api/v1/note/links/{id}.
func (b *backendAdapter) FetchLinkContent(ctx context.Context, recordID string) (models.LinkContent, error) {
	var link models.LinkContent
	err := b.getEnvelope(ctx, linksPath, map[string]string{"id": recordID}, &link)
	if err != nil {
		return models.LinkContent{}, fmt.Errorf("fetch link content: %w", err)
	}
	return link, nil
}

// Acknowledge implements [BackendAdapter] with POST /api/v1/note/records.
// An empty ids slice is a no-op.
func (b *backendAdapter) Acknowledge(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	request := models.AcknowledgeRequest{IDs: ids}
	if err := b.validator.Validate(ctx, request); err != nil {
		return fmt.Errorf("acknowledge records: %w", err)
	}

	resp, err := b.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post(recordsPath)
	if err != nil {
		return fmt.Errorf("acknowledge records: %w: %w", ErrNetwork, err)
	}
	if err = mapBackendError(resp); err != nil {
		return fmt.Errorf("acknowledge records: %w", err)
	}

	b.logger.Debug().Int("count", len(ids)).Msg("records acknowledged")
	return nil
}

// GetQuota implements [BackendAdapter] with GET /api/v1/user/quota.
func (b *backendAdapter) GetQuota(ctx context.Context) (models.Quota, error) {
	var quota models.Quota
	if err := b.getEnvelope(ctx, quotaPath, nil, &quota); err != nil {
		return models.Quota{}, fmt.Errorf("get quota: %w", err)
	}
	return quota, nil
}

// getEnvelope performs an authenticated GET and decodes the data member of
// the backend envelope into out.
func (b *backendAdapter) getEnvelope(ctx context.Context, path string, params map[string]string, out any) error {
	req := b.authedRequest(ctx)
	if params != nil {
		req.SetPathParams(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	if err = mapBackendError(resp); err != nil {
		return err
	}

	var envelope models.BackendResponse
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrNetwork, err)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err = json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %v", ErrNetwork, err)
	}
	return nil
}

func (b *backendAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := b.client.R().SetContext(ctx)
	if token := b.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// filenameFromDisposition extracts the file name of a Content-Disposition
// header. Headers that do not parse as a media type fall back to the text
// after the first '=' of the second segment.
func filenameFromDisposition(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	if _, params, err := mime.ParseMediaType(header); err == nil {
		if name := strings.TrimSpace(params["filename"]); name != "" {
			return name
		}
	}

	parts := strings.Split(header, ";")
	if len(parts) < 2 {
		return ""
	}
	_, value, ok := strings.Cut(parts[1], "=")
	if !ok {
		return ""
	}
	return strings.Trim(strings.TrimSpace(value), `"'`)
}
