// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the runtime of the sync daemon.
//
// It wires the state store, the backend and document store adapters, the
// sync service, the timer worker, the config watcher and the control API
// into a single process lifecycle.
package client
