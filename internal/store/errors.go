// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// ErrUnknownDriver is returned by [NewStateStore] for a storage driver other
// than sqlite or bolt.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Low-level database operation errors. State store methods wrap one of these
// so that callers can tell a broken query from a broken connection.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrBucketNotFound is returned by the bolt store when one of its
	// buckets is missing from an opened database.
	ErrBucketNotFound = errors.New("bucket not found")
)
