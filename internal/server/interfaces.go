// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

type Server interface {
	// Run serves until ctx is done, then shuts down gracefully. It returns
	// nil after a clean shutdown.
	Run(ctx context.Context) error

	// Addr is the bound listener address, empty before Run.
	Addr() string
}
