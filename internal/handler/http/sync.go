// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-sync/internal/app"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// syncResponse is the body of POST /api/sync.
type syncResponse struct {
	Message string            `json:"message"`
	Result  models.SyncResult `json:"result"`
}

// postSync runs a manual pass and answers when it has finished. The pass is
// detached from the request so a client that disconnects does not abort a
// half-written pass.
func (h *Handler) postSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := context.WithoutCancel(r.Context())

	result, err := h.services.SyncService.Sync(ctx, models.TriggerManual)
	if errors.Is(err, service.ErrSyncInProgress) {
		log.Info().Msg("manual sync rejected, another pass is running")
		utils.WriteError(w, r, app.MsgSyncInProgress, http.StatusConflict)
		return
	}

	status := http.StatusOK
	if err != nil {
		log.Err(err).Str("func", "*Handler.postSync").Msg("manual sync did not complete")
		status = statusFromError(err)
	}

	utils.WriteJSON(w, syncResponse{Message: result.Message(), Result: result}, status)
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.SyncService.Status(), http.StatusOK)
}

func (h *Handler) getQuota(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	quota, err := h.services.SyncService.Quota(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getQuota").Msg("error getting quota")
		utils.WriteError(w, r, quotaMessage(err), statusFromError(err))
		return
	}

	utils.WriteJSON(w, quota, http.StatusOK)
}

// quotaMessage exposes backend failures as they are and hides anything
// else behind a generic message.
func quotaMessage(err error) string {
	switch statusFromError(err) {
	case http.StatusPreconditionFailed:
		return app.MsgNotConfigured
	case http.StatusBadGateway:
		return err.Error()
	case http.StatusGatewayTimeout:
		return app.MsgRequestTimedOut
	default:
		return app.MsgInternalServerError
	}
}
