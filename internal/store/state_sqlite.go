// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

type sqliteStateStore struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteStateStore returns a [StateStore] over an already migrated db.
func NewSQLiteStateStore(db *DB, logger *logger.Logger) StateStore {
	return &sqliteStateStore{
		DB:     db,
		logger: logger,
	}
}

func (s *sqliteStateStore) GetCursor(ctx context.Context) (models.SyncCursor, error) {
	log := logger.FromContext(ctx)

	var value int64
	err := s.DB.QueryRowContext(ctx, getCursor, cursorKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncCursor{}, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStateStore.GetCursor").
			Msg("failed to read sync cursor")
		return models.SyncCursor{}, fmt.Errorf("%w: get cursor: %w", ErrExecutingQuery, err)
	}

	return models.SyncCursor{LastWrittenTimestamp: value}, nil
}

func (s *sqliteStateStore) SaveCursor(ctx context.Context, cursor models.SyncCursor) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, saveCursor, cursorKey, cursor.LastWrittenTimestamp, time.Now().UnixMilli())
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStateStore.SaveCursor").
			Int64("cursor", cursor.LastWrittenTimestamp).
			Msg("failed to save sync cursor")
		return fmt.Errorf("%w: save cursor: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteStateStore) MarkWritten(ctx context.Context, recordID string) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, markWritten, recordID, time.Now().UnixMilli())
	if err != nil {
		log.Err(err).
			Str("func", "sqliteStateStore.MarkWritten").
			Str("record_id", recordID).
			Msg("failed to mark record as written")
		return fmt.Errorf("%w: mark written (record_id=%s): %w", ErrExecutingStatement, recordID, err)
	}

	return nil
}

func (s *sqliteStateStore) IsWritten(ctx context.Context, recordID string) (bool, error) {
	var written bool
	if err := s.DB.QueryRowContext(ctx, isWritten, recordID).Scan(&written); err != nil {
		return false, fmt.Errorf("%w: is written (record_id=%s): %w", ErrExecutingQuery, recordID, err)
	}
	return written, nil
}

func (s *sqliteStateStore) ClearWritten(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete(writtenRecordsTable).
		Where(sq.Eq{"record_id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteStateStore.ClearWritten").
			Int("count", len(ids)).
			Msg("failed to clear written records")
		return fmt.Errorf("%w: clear written: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteStateStore) Close() error {
	return s.DB.Close()
}
