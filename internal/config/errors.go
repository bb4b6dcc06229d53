// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidBackendConfigs indicates invalid backend settings
	// (for example, a missing address or a non-positive timeout).
	ErrInvalidBackendConfigs = errors.New("invalid backend configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN or unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidDocStoreConfigs indicates invalid document store settings.
	ErrInvalidDocStoreConfigs = errors.New("invalid document store configuration")
	// ErrInvalidTargetConfigs indicates an unknown time zone.
	ErrInvalidTargetConfigs = errors.New("invalid target configuration")
	// ErrInvalidCryptoConfigs indicates an unknown cipher scheme.
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
)
