// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/utils"
)

type Handler struct {
	services *service.Services

	authToken      string
	requestTimeout time.Duration
	ids            *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.ClientServer, logger *logger.Logger) *Handler {
	logger.Info().Bool("auth", cfg.AuthToken != "").Msg("http handler created")
	return &Handler{
		services:       services,
		authToken:      cfg.AuthToken,
		requestTimeout: cfg.RequestTimeout,
		ids:            utils.NewUUIDGenerator(),
		logger:         logger,
	}
}
