// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// BackendResponse is the envelope every note-push backend endpoint wraps its
// payload in.
type BackendResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// RecordList is the payload of GET /api/v1/note/records.
type RecordList struct {
	List []NoteRecord `json:"list"`
}

// AcknowledgeRequest is the body of POST /api/v1/note/records.
type AcknowledgeRequest struct {
	IDs []string `json:"ids"`
}

// KernelResponse is the envelope of the document-store kernel API.
type KernelResponse struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// AssetUploadResult is the payload of the kernel asset upload endpoint.
// SuccMap maps the uploaded file name to its stored asset path.
type AssetUploadResult struct {
	ErrFiles []string          `json:"errFiles"`
	SuccMap  map[string]string `json:"succMap"`
}
