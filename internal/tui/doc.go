// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui renders sync results, daemon status, quota and build info for
// the terminal and shows a spinner while a manual pass runs.
package tui
