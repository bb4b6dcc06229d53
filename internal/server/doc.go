// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the control API listener of the daemon and shuts it
// down gracefully.
package server
