// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/service"
)

// errorStatuses is checked in order; the first match wins.
var errorStatuses = []struct {
	target error
	status int
}{
	{service.ErrSyncInProgress, http.StatusConflict},
	{service.ErrConfiguration, http.StatusPreconditionFailed},
	{adapter.ErrUnauthorized, http.StatusBadGateway},
	{adapter.ErrBadRequest, http.StatusBadGateway},
	{adapter.ErrNetwork, http.StatusBadGateway},
	{adapter.ErrDocumentStore, http.StatusBadGateway},
	{adapter.ErrUpload, http.StatusBadGateway},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
	{context.Canceled, http.StatusServiceUnavailable},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
