// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/handler"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/server"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/workers"
	"github.com/MKhiriev/go-note-sync/models"
)

// AppName prefixes user notices and names the logger role.
const AppName = "notesync"

// Options carry the optional collaborators of [NewApp].
type Options struct {
	// LoadConfig re-reads the configuration when the watched JSON file
	// changes. Nil disables the watcher.
	LoadConfig func() (*config.ClientConfig, error)

	// Notifier receives user notices in addition to the log.
	Notifier service.Notifier

	// BuildInfo is reported by the version endpoint and notice prefix.
	BuildInfo models.AppBuildInfo
}

type App struct {
	cfg *config.ClientConfig

	state    store.StateStore
	services *service.Services
	worker   workers.SyncWorker
	workers  *workers.Workers
	watcher  *config.Watcher
	server   server.Server

	logger *logger.Logger
}

// NewApp builds the daemon from cfg. The state store is opened here; call
// Close when the app is no longer needed.
func NewApp(ctx context.Context, cfg *config.ClientConfig, opts Options, logger *logger.Logger) (*App, error) {
	state, err := store.NewStateStore(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	app, err := newApp(cfg, state, opts, logger)
	if err != nil {
		return nil, errors.Join(err, state.Close())
	}
	return app, nil
}

func newApp(cfg *config.ClientConfig, state store.StateStore, opts Options, logger *logger.Logger) (*App, error) {
	backend, err := adapter.NewBackendAdapter(cfg.Backend, logger)
	if err != nil {
		return nil, fmt.Errorf("create backend adapter: %w", err)
	}

	kernel, err := adapter.NewSiYuanAdapter(cfg.DocStore, logger)
	if err != nil {
		return nil, fmt.Errorf("create document store adapter: %w", err)
	}

	cipher, err := crypto.New(cfg.Crypto.Scheme)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	images := service.NewLinkImageRewriter(kernel, service.LinkImageOptions{
		Concurrency:   cfg.Workers.LinkImageConcurrency,
		RatePerSecond: cfg.Workers.LinkImageRate,
		Timeout:       cfg.Backend.RequestTimeout,
	}, logger)

	transformer, err := service.NewContentTransformer(service.TransformerDeps{
		Backend:   backend,
		Documents: kernel,
		Assets:    kernel,
		Cipher:    cipher,
		Images:    images,
		Location:  cfg.Target.Location,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create content transformer: %w", err)
	}

	notifier := service.Notifier(service.NewLogNotifier(fmt.Sprintf("%s %s: ", AppName, opts.BuildInfo.Version()), logger))
	if opts.Notifier != nil {
		notifier = service.MultiNotifier{notifier, opts.Notifier}
	}

	syncService := service.NewSyncService(cfg.SyncConfig(), service.SyncDeps{
		Backend:     backend,
		State:       state,
		Transformer: transformer,
		Writer:      service.NewDocumentWriter(kernel, state, cfg.Target.Location, logger),
		Cipher:      cipher,
		Notifier:    notifier,
		Logger:      logger,
	})
	services := service.NewServices(syncService, service.NewAppInfoService(opts.BuildInfo, logger))

	worker := workers.NewSyncWorker(syncService, workers.SyncWorkerOptions{
		Interval:   cfg.Workers.SyncInterval,
		Token:      cfg.Backend.Token,
		SyncOnLoad: cfg.Workers.SyncOnLoad,
	}, logger)

	app := &App{
		cfg:      cfg,
		state:    state,
		services: services,
		worker:   worker,
		workers:  workers.NewWorkers(worker),
		logger:   logger,
	}

	if cfg.Server.HTTPAddress != "" {
		handlers, err := handler.NewHandlers(services, cfg.Server, logger)
		if err != nil {
			return nil, fmt.Errorf("create handlers: %w", err)
		}
		app.server, err = server.NewServer(handlers, cfg.Server, logger)
		if err != nil {
			return nil, fmt.Errorf("create server: %w", err)
		}
	}

	if cfg.JSONFilePath != "" && opts.LoadConfig != nil {
		app.watcher = config.NewWatcher(cfg.JSONFilePath, opts.LoadConfig, logger)
		app.watcher.OnReload(app.reconfigure)
	}

	return app, nil
}

// Services exposes the services for the CLI.
func (a *App) Services() *service.Services {
	return a.services
}

// Run starts the sync worker (with the on-load pass), the config watcher and
// the control API, and blocks until ctx is done. The worker is stopped
// before Run returns.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().
		Dur("sync_interval", a.cfg.Workers.SyncInterval).
		Bool("sync_on_load", a.cfg.Workers.SyncOnLoad).
		Str("control_api", a.cfg.Server.HTTPAddress).
		Msg("starting daemon")

	a.workers.Run(ctx)
	defer a.workers.Stop()

	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			a.logger.Warn().Err(err).Str("path", a.cfg.JSONFilePath).Msg("config watcher not started, changes need a restart")
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if a.server != nil {
		g.Go(func() error { return a.server.Run(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	err := g.Wait()
	a.logger.Info().Msg("daemon stopped")
	return err
}

// SyncOnce implements [Client].
func (a *App) SyncOnce(ctx context.Context, trigger models.SyncTrigger) (models.SyncResult, error) {
	return a.services.SyncService.Sync(ctx, trigger)
}

// Close implements [Client].
func (a *App) Close() error {
	return a.state.Close()
}

// reconfigure applies a reloaded configuration from the next pass on. Only
// the sync settings and the timer change at runtime.
func (a *App) reconfigure(cfg *config.ClientConfig) {
	a.services.SyncService.UpdateConfig(cfg.SyncConfig())
	a.worker.Reconfigure(cfg.Workers.SyncInterval, cfg.Backend.Token)

	if cfg.Storage != a.cfg.Storage || cfg.DocStore != a.cfg.DocStore ||
		cfg.Server != a.cfg.Server || cfg.Crypto.Scheme != a.cfg.Crypto.Scheme ||
		cfg.Target.Location.String() != a.cfg.Target.Location.String() {
		a.logger.Warn().Msg("storage, document store, server, cipher scheme and time zone changes apply after a restart")
	}

	a.logger.Info().Bool("configured", cfg.SyncConfig().Ready()).Msg("configuration reloaded")
}
