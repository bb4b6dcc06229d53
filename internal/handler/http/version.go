// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-note-sync/internal/utils"
)

type versionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetBuildInfo(r.Context())

	utils.WriteJSON(w, versionResponse{
		Version: h.services.AppInfoService.GetAppVersion(r.Context()),
		Commit:  info.BuildCommit(),
		Date:    info.BuildDate(),
	}, http.StatusOK)
}
