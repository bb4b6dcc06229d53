// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	cursorKey = "lastSyncCursor"

	writtenRecordsTable = "written_records"

	getCursor = `
		SELECT value
		FROM sync_state
		WHERE key = ?;`

	saveCursor = `
		INSERT INTO sync_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at;`

	markWritten = `
		INSERT INTO written_records (record_id, written_at)
		VALUES (?, ?)
		ON CONFLICT(record_id) DO NOTHING;`

	isWritten = `
		SELECT EXISTS (
			SELECT 1
			FROM written_records
			WHERE record_id = ?
		);`
)
