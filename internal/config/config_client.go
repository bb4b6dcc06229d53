// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-note-sync/models"
)

// ClientBackend holds the settings of the note-push backend adapter.
type ClientBackend struct {
	// Address is the backend base URL.
	Address string
	// Token is the bearer token; empty means sync is not configured.
	Token string
	// RequestTimeout bounds every backend request.
	RequestTimeout time.Duration
}

// ClientDocStore holds the settings of the document store adapter.
type ClientDocStore struct {
	Address        string
	Token          string
	RequestTimeout time.Duration
}

// ClientStorage holds the local state store settings.
type ClientStorage struct {
	// Driver is "sqlite" or "bolt".
	Driver string
	// DSN is the database file path.
	DSN string
}

// ClientTarget selects where records are written.
type ClientTarget struct {
	NotebookID string
	DocumentID string
	// Location is the zone of heading timestamps.
	Location *time.Location
}

// ClientCrypto holds the key material of encrypted records.
type ClientCrypto struct {
	Salt   string
	Scheme string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the sync worker runs. Zero or negative
	// disables the timer.
	SyncInterval time.Duration
	// SyncOnLoad requests a pass when the daemon starts.
	SyncOnLoad bool
	// LinkImageConcurrency bounds parallel image downloads of a link.
	LinkImageConcurrency int
	// LinkImageRate paces image downloads, per second.
	LinkImageRate float64
}

// ClientServer holds the control API settings.
type ClientServer struct {
	// HTTPAddress is empty when the control API is disabled.
	HTTPAddress    string
	RequestTimeout time.Duration
	// AuthToken is empty when the control API is unauthenticated.
	AuthToken string
}

// ClientLog holds the log destination and rotation.
type ClientLog struct {
	File       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ClientConfig is the validated runtime configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Backend  ClientBackend
	Target   ClientTarget
	Crypto   ClientCrypto
	Workers  ClientWorkers
	Storage  ClientStorage
	DocStore ClientDocStore
	Server   ClientServer
	Log      ClientLog

	// JSONFilePath is the config file the daemon watches, if any.
	JSONFilePath string
}

// GetClientConfig builds and validates a client config view from the merged
// structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps cfg to a [ClientConfig] and validates it.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	location := time.Local
	if tz := strings.TrimSpace(cfg.Target.TimeZone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("%w: time zone %q: %v", ErrInvalidTargetConfigs, tz, err)
		}
		location = loc
	}

	syncInterval := DefaultSyncInterval
	if cfg.Workers.SyncInterval != nil {
		syncInterval = *cfg.Workers.SyncInterval
	}
	syncOnLoad := true
	if cfg.Workers.SyncOnLoad != nil {
		syncOnLoad = *cfg.Workers.SyncOnLoad
	}

	clientCfg := &ClientConfig{
		Backend: ClientBackend{
			Address:        strings.TrimSpace(cfg.Backend.Address),
			Token:          strings.TrimSpace(cfg.Backend.Token),
			RequestTimeout: cfg.Backend.RequestTimeout,
		},
		Target: ClientTarget{
			NotebookID: cfg.Target.NotebookID,
			DocumentID: cfg.Target.DocumentID,
			Location:   location,
		},
		Crypto: ClientCrypto{
			Salt:   cfg.Crypto.Salt,
			Scheme: strings.ToLower(strings.TrimSpace(cfg.Crypto.Scheme)),
		},
		Workers: ClientWorkers{
			SyncInterval:         syncInterval,
			SyncOnLoad:           syncOnLoad,
			LinkImageConcurrency: cfg.Workers.LinkImageConcurrency,
			LinkImageRate:        cfg.Workers.LinkImageRate,
		},
		Storage: ClientStorage{
			Driver: strings.ToLower(strings.TrimSpace(cfg.Storage.Driver)),
			DSN:    cfg.Storage.DSN,
		},
		DocStore: ClientDocStore{
			Address:        strings.TrimSpace(cfg.DocStore.Address),
			Token:          cfg.DocStore.Token,
			RequestTimeout: cfg.DocStore.RequestTimeout,
		},
		Server: ClientServer{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
			AuthToken:      strings.TrimSpace(cfg.Server.AuthToken),
		},
		Log: ClientLog{
			File:       cfg.Log.File,
			Level:      cfg.Log.Level,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		},
		JSONFilePath: cfg.JSONFilePath,
	}

	return clientCfg, clientCfg.validate()
}

// SyncConfig returns the per-pass view consumed by the sync service.
func (c *ClientConfig) SyncConfig() models.SyncConfig {
	return models.SyncConfig{
		Token:        c.Backend.Token,
		NotebookID:   c.Target.NotebookID,
		DocumentID:   c.Target.DocumentID,
		SyncInterval: c.Workers.SyncInterval,
		SyncOnLoad:   c.Workers.SyncOnLoad,
		Salt:         c.Crypto.Salt,
	}
}
