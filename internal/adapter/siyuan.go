// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	appendBlockPath   = "/api/block/appendBlock"
	createDocPath     = "/api/filetree/createDocWithMd"
	hpathByIDPath     = "/api/filetree/getHPathByID"
	assetUploadPath   = "/api/asset/upload"
	assetsDir         = "/assets/"
	markdownDataType  = "markdown"
	uploadFormField   = "file[]"
	assetsDirFormName = "assetsDirPath"
)

type siyuanAdapter struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

type appendBlockRequest struct {
	DataType string `json:"dataType"`
	Data     string `json:"data"`
	ParentID string `json:"parentID"`
}

type createDocRequest struct {
	Notebook string `json:"notebook"`
	Path     string `json:"path"`
	Markdown string `json:"markdown"`
}

type idRequest struct {
	ID string `json:"id"`
}

// NewSiYuanAdapter constructs a [KernelAdapter] for the SiYuan kernel API at
// cfg.Address. When cfg.Token is set every request carries
// "Authorization: Token <token>".
func NewSiYuanAdapter(cfg config.ClientDocStore, logger *logger.Logger) (KernelAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid document store address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &siyuanAdapter{client: client, token: strings.TrimSpace(cfg.Token), logger: logger}, nil
}

// AppendBlock implements [DocumentStore] with POST /api/block/appendBlock.
func (s *siyuanAdapter) AppendBlock(ctx context.Context, parentID, markdown string) error {
	err := s.post(ctx, appendBlockPath, appendBlockRequest{
		DataType: markdownDataType,
		Data:     markdown,
		ParentID: parentID,
	}, nil)
	if err != nil {
		return fmt.Errorf("append block to %s: %w", parentID, err)
	}
	return nil
}

// CreateDocument implements [DocumentStore] with
// POST /api/filetree/createDocWithMd.
func (s *siyuanAdapter) CreateDocument(ctx context.Context, notebookID, path, markdown string) (string, error) {
	var id string
	err := s.post(ctx, createDocPath, createDocRequest{
		Notebook: notebookID,
		Path:     path,
		Markdown: markdown,
	}, &id)
	if err != nil {
		return "", fmt.Errorf("create document %q: %w", path, err)
	}
	if id == "" {
		return "", fmt.Errorf("create document %q: %w: empty document id", path, ErrDocumentStore)
	}
	return id, nil
}

// ResolvePathByID implements [DocumentStore] with
// POST /api/filetree/getHPathByID.
func (s *siyuanAdapter) ResolvePathByID(ctx context.Context, id string) (string, error) {
	var hpath string
	if err := s.post(ctx, hpathByIDPath, idRequest{ID: id}, &hpath); err != nil {
		return "", fmt.Errorf("resolve path of %s: %w", id, err)
	}
	return hpath, nil
}

// UploadAsset implements [AssetStore] with a multipart POST /api/asset/upload.
// The stored path is looked up by name in succMap, falling back to the first
// entry when the kernel renamed the file.
func (s *siyuanAdapter) UploadAsset(ctx context.Context, name string, data []byte) (string, error) {
	resp, err := s.request(ctx).
		SetFileReader(uploadFormField, name, bytes.NewReader(data)).
		SetFormData(map[string]string{assetsDirFormName: assetsDir}).
		Post(assetUploadPath)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w: %w", name, ErrUpload, err)
	}

	var result models.AssetUploadResult
	if err = decodeKernelResponse(resp, ErrUpload, &result); err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}

	if path, ok := result.SuccMap[name]; ok && path != "" {
		return path, nil
	}
	if len(result.SuccMap) > 0 {
		keys := make([]string, 0, len(result.SuccMap))
		for k := range result.SuccMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return result.SuccMap[keys[0]], nil
	}
	return "", fmt.Errorf("upload %s: %w: rejected files %v", name, ErrUpload, result.ErrFiles)
}

func (s *siyuanAdapter) post(ctx context.Context, path string, body, out any) error {
	resp, err := s.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDocumentStore, err)
	}
	return decodeKernelResponse(resp, ErrDocumentStore, out)
}

func (s *siyuanAdapter) request(ctx context.Context) *resty.Request {
	req := s.client.R().SetContext(ctx)
	if s.token != "" {
		req.SetHeader("Authorization", "Token "+s.token)
	}
	return req
}
