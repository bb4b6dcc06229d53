// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-note-sync/models"
	"github.com/go-resty/resty/v2"
)

// mapBackendError converts a non-2xx backend response into a sentinel:
// 400 carries the server message, 401 means the token was rejected and
// anything else is reported as the server being busy.
func mapBackendError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return &ServerError{StatusCode: resp.StatusCode(), Message: backendMessage(resp)}
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w (http %d)", ErrNetwork, resp.StatusCode())
	}
}

func backendMessage(resp *resty.Response) string {
	var envelope models.BackendResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	if body := strings.TrimSpace(string(resp.Body())); body != "" {
		return body
	}
	return http.StatusText(resp.StatusCode())
}

// decodeKernelResponse checks the HTTP status and the envelope code of a
// kernel response and decodes its data into out (when out is not nil).
// Failures wrap kind.
func decodeKernelResponse(resp *resty.Response, kind error, out any) error {
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		body := strings.TrimSpace(string(resp.Body()))
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%w: http %d: %s", kind, resp.StatusCode(), body)
	}

	var envelope models.KernelResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return fmt.Errorf("%w: decode response: %v", kind, err)
	}
	if envelope.Code != 0 {
		return fmt.Errorf("%w: code %d: %s", kind, envelope.Code, envelope.Msg)
	}

	if out == nil || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %v", kind, err)
	}
	return nil
}
