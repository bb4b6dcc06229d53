// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants that do not depend on the runtime view.
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.LinkImageConcurrency < 0 || cfg.Workers.LinkImageRate < 0 {
		return fmt.Errorf("%w: negative link image limits", ErrInvalidWorkerConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if !isHTTPURL(cfg.Backend.Address) || cfg.Backend.RequestTimeout <= 0 {
		return ErrInvalidBackendConfigs
	}

	if !isHTTPURL(cfg.DocStore.Address) || cfg.DocStore.RequestTimeout <= 0 {
		return ErrInvalidDocStoreConfigs
	}

	switch cfg.Storage.Driver {
	case "sqlite", "bolt":
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}
	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Crypto.Scheme {
	case "", "xor", "aes":
	default:
		return fmt.Errorf("%w: unknown scheme %q", ErrInvalidCryptoConfigs, cfg.Crypto.Scheme)
	}

	if cfg.Workers.LinkImageConcurrency < 1 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidLogConfigs, err)
		}
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
