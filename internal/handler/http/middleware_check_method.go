// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-sync/internal/app"
	"github.com/MKhiriev/go-note-sync/internal/utils"
)

// CheckHTTPMethod answers requests to a known path with an unsupported
// method: 405 with an Allow header listing the registered methods.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if route == r.URL.Path {
				allowed = append(allowed, method)
			}
			return nil
		})

		if len(allowed) == 0 {
			utils.WriteError(w, r, app.MsgNotFound, http.StatusNotFound)
			return
		}

		sort.Strings(allowed)
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		utils.WriteError(w, r, app.MsgMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}
