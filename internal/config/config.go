// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the top-level configuration container for notesync.
// It aggregates all sub-configurations and is populated by merging values
// from defaults, environment variables, command-line flags and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Backend holds the address and credentials of the note-push backend.
	Backend Backend `envPrefix:"BACKEND_"`

	// Target selects where records are written.
	Target Target `envPrefix:"TARGET_"`

	// Crypto holds the shared salt for encrypted records.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Workers holds configuration for the background sync worker.
	Workers Workers `envPrefix:"WORKERS_"`

	// Storage holds the local state database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// DocStore holds the address of the document store kernel.
	DocStore DocStore `envPrefix:"DOCSTORE_"`

	// Server holds the control API settings.
	Server Server `envPrefix:"SERVER_"`

	// Log holds the log destination and rotation settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Backend holds connection settings for the note-push backend.
type Backend struct {
	// Address is the base URL of the backend (e.g. "https://push.example.com").
	// Env: BACKEND_ADDRESS
	Address string `env:"ADDRESS"`

	// Token is the bearer token issued by the backend.
	// Env: BACKEND_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds every backend request (e.g. "10s").
	// Env: BACKEND_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Target selects the notebook and document records are appended to.
type Target struct {
	// Env: TARGET_NOTEBOOK_ID
	NotebookID string `env:"NOTEBOOK_ID"`

	// Env: TARGET_DOCUMENT_ID
	DocumentID string `env:"DOCUMENT_ID"`

	// TimeZone is the IANA zone used for heading timestamps. Empty means
	// the local zone.
	// Env: TARGET_TIME_ZONE
	TimeZone string `env:"TIME_ZONE"`
}

// Crypto holds the key material for encrypted records.
type Crypto struct {
	// Salt is the shared secret. The xor scheme needs at least 48
	// characters; aes takes any non-empty password.
	// Env: CRYPTO_SALT
	Salt string `env:"SALT"`

	// Scheme selects the cipher: "xor" (default) or "aes".
	// Env: CRYPTO_SCHEME
	Scheme string `env:"SCHEME"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the recurring sync. Zero or negative
	// disables it; nil means [DefaultSyncInterval].
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval *time.Duration `env:"SYNC_INTERVAL"`

	// SyncOnLoad requests a pass when the daemon starts. Nil means true.
	// Env: WORKERS_SYNC_ON_LOAD
	SyncOnLoad *bool `env:"SYNC_ON_LOAD"`

	// LinkImageConcurrency bounds parallel image downloads of a link record.
	// Env: WORKERS_LINK_IMAGE_CONCURRENCY
	LinkImageConcurrency int `env:"LINK_IMAGE_CONCURRENCY"`

	// LinkImageRate is the number of image downloads started per second.
	// Env: WORKERS_LINK_IMAGE_RATE
	LinkImageRate float64 `env:"LINK_IMAGE_RATE"`
}

// Storage holds the local state database settings.
type Storage struct {
	// Driver is "sqlite" or "bolt".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the database file path.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`
}

// DocStore holds connection settings for the document store kernel.
type DocStore struct {
	// Env: DOCSTORE_ADDRESS
	Address string `env:"ADDRESS"`

	// Env: DOCSTORE_TOKEN
	Token string `env:"TOKEN"`

	// Env: DOCSTORE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Server holds the control API settings. An empty address disables it.
type Server struct {
	// HTTPAddress is the TCP address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single control API request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AuthToken, when set, is required as a bearer token on every control
	// API request except the version endpoint.
	// Env: SERVER_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`
}

// Log holds the log destination. An empty file means stdout.
type Log struct {
	// Env: LOG_FILE
	File string `env:"FILE"`

	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// Env: LOG_MAX_SIZE_MB
	MaxSizeMB int `env:"MAX_SIZE_MB"`

	// Env: LOG_MAX_BACKUPS
	MaxBackups int `env:"MAX_BACKUPS"`

	// Env: LOG_MAX_AGE_DAYS
	MaxAgeDays int `env:"MAX_AGE_DAYS"`
}

const (
	DefaultSyncInterval     = time.Hour
	DefaultRequestTimeout   = 5 * time.Second
	DefaultDocStoreAddress  = "http://127.0.0.1:6806"
	DefaultStorageDriver    = "sqlite"
	DefaultStorageDSN       = "notesync.db"
	DefaultLinkImageWorkers = 4
	DefaultLinkImageRate    = 5
	DefaultLogLevel         = "info"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		Backend: Backend{RequestTimeout: DefaultRequestTimeout},
		Crypto:  Crypto{Scheme: "xor"},
		Workers: Workers{
			LinkImageConcurrency: DefaultLinkImageWorkers,
			LinkImageRate:        DefaultLinkImageRate,
		},
		Storage:  Storage{Driver: DefaultStorageDriver, DSN: DefaultStorageDSN},
		DocStore: DocStore{Address: DefaultDocStoreAddress, RequestTimeout: DefaultRequestTimeout},
		Server:   Server{RequestTimeout: 30 * time.Second},
		Log:      Log{Level: DefaultLogLevel, MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  0. Built-in defaults
//  1. Environment variables
//  2. Command-line flags (only those set explicitly in fs)
//  3. JSON file (path resolved from sources 1 and 2)
//
// fs may be nil when no flags were registered.
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(fs).
		withJSON().
		build()
}

// GetBaseConfig is [GetStructuredConfig] without the JSON file layer. The
// JSON path is still resolved, so a caller can create the file.
func GetBaseConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(fs).
		build()
}
