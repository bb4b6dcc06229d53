// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
)

// userMessage turns a pass error into the text shown to the user. Server
// messages of rejected requests are passed through verbatim.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var serverErr *adapter.ServerError
	switch {
	case errors.As(err, &serverErr):
		return serverErr.Message
	case errors.Is(err, adapter.ErrUnauthorized):
		return adapter.ErrUnauthorized.Error()
	case errors.Is(err, adapter.ErrNetwork):
		return adapter.ErrNetwork.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "sync was interrupted"
	default:
		return err.Error()
	}
}
