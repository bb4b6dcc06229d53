// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
)

// Supported values of the storage.driver setting.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// NewStateStore opens the state store selected by cfg.Driver:
//   - sqlite (default): opens cfg.DSN with go-sqlite3 and runs the embedded
//     goose migrations before returning;
//   - bolt: opens cfg.DSN as a bbolt file with one bucket per concern.
//
// Returns [ErrUnknownDriver] for any other driver.
func NewStateStore(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (StateStore, error) {
	logger.Info().Str("driver", cfg.Driver).Str("dsn", cfg.DSN).Msg("opening state store...")

	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DSN, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return NewSQLiteStateStore(db, logger), nil
	case DriverBolt:
		return NewBoltStateStore(cfg.DSN, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
