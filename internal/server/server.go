// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/handler"
	"github.com/MKhiriev/go-note-sync/internal/logger"
)

// DefaultShutdownTimeout bounds the graceful shutdown of the listener. A
// manual pass still running after it is cut off.
const DefaultShutdownTimeout = 30 * time.Second

type server struct {
	httpServer      *httpServer
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.ClientServer, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer:      newHTTPServer(handlers.HTTP.Init(), cfg.HTTPAddress, logger),
		shutdownTimeout: DefaultShutdownTimeout,
		logger:          logger,
	}, nil
}

func (s *server) Run(ctx context.Context) error {
	if err := s.httpServer.listen(); err != nil {
		return err
	}
	s.logger.Info().Str("address", s.Addr()).Msg("Launching HTTP server")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(s.httpServer.RunServer)
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Addr() string {
	return s.httpServer.Addr()
}
