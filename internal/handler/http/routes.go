// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		if h.requestTimeout > 0 {
			r.With(middleware.Timeout(h.requestTimeout)).Get("/api/status", h.getStatus)
			r.With(middleware.Timeout(h.requestTimeout)).Get("/api/quota", h.getQuota)
		} else {
			r.Get("/api/status", h.getStatus)
			r.Get("/api/quota", h.getQuota)
		}
		r.Post("/api/sync", h.postSync)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
