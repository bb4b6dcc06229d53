// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

var (
	bucketState   = []byte("sync_state")
	bucketWritten = []byte("written_records")
)

type boltStateStore struct {
	db     *bbolt.DB
	logger *logger.Logger
}

// NewBoltStateStore opens (or creates) the bbolt database at path and
// returns a [StateStore] over it.
func NewBoltStateStore(path string, logger *logger.Logger) (StateStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create boltdb directory: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketState, bucketWritten} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &boltStateStore{db: db, logger: logger}, nil
}

func (b *boltStateStore) GetCursor(_ context.Context) (models.SyncCursor, error) {
	var cursor models.SyncCursor

	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		if bucket == nil {
			return fmt.Errorf("%w: %s", ErrBucketNotFound, bucketState)
		}

		if raw := bucket.Get([]byte(cursorKey)); len(raw) == 8 {
			cursor.LastWrittenTimestamp = int64(binary.BigEndian.Uint64(raw))
		}
		return nil
	})
	if err != nil {
		return models.SyncCursor{}, fmt.Errorf("failed to get sync cursor: %w", err)
	}

	return cursor, nil
}

func (b *boltStateStore) SaveCursor(_ context.Context, cursor models.SyncCursor) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		if bucket == nil {
			return fmt.Errorf("%w: %s", ErrBucketNotFound, bucketState)
		}

		raw := make([]byte, 8)
		binary.BigEndian.PutUint64(raw, uint64(cursor.LastWrittenTimestamp))
		if err := bucket.Put([]byte(cursorKey), raw); err != nil {
			return fmt.Errorf("failed to save sync cursor: %w", err)
		}
		return nil
	})
}

func (b *boltStateStore) MarkWritten(_ context.Context, recordID string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWritten)
		if bucket == nil {
			return fmt.Errorf("%w: %s", ErrBucketNotFound, bucketWritten)
		}
		if bucket.Get([]byte(recordID)) != nil {
			return nil
		}

		raw := make([]byte, 8)
		binary.BigEndian.PutUint64(raw, uint64(time.Now().UnixMilli()))
		if err := bucket.Put([]byte(recordID), raw); err != nil {
			return fmt.Errorf("failed to mark record %s as written: %w", recordID, err)
		}
		return nil
	})
}

func (b *boltStateStore) IsWritten(_ context.Context, recordID string) (bool, error) {
	var written bool

	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWritten)
		if bucket == nil {
			return fmt.Errorf("%w: %s", ErrBucketNotFound, bucketWritten)
		}
		written = bucket.Get([]byte(recordID)) != nil
		return nil
	})

	return written, err
}

func (b *boltStateStore) ClearWritten(_ context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketWritten)
		if bucket == nil {
			return fmt.Errorf("%w: %s", ErrBucketNotFound, bucketWritten)
		}
		for _, id := range ids {
			if err := bucket.Delete([]byte(id)); err != nil {
				return fmt.Errorf("failed to clear record %s: %w", id, err)
			}
		}
		return nil
	})
}

func (b *boltStateStore) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}
