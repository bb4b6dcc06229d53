// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message strings of the control API.
//
// All Msg* constants are written into the "error" field of control API
// response bodies. Keeping them in one place ensures consistent wording.
package app

const (
	// MsgSyncInProgress is returned when a manual pass is requested while
	// another pass is running.
	MsgSyncInProgress = "a sync pass is already running"

	// MsgNotConfigured is returned when the token, notebook or document is
	// missing.
	MsgNotConfigured = "sync is not configured"

	// MsgInternalServerError is returned when an unexpected failure occurs
	// that the caller cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgRequestTimedOut is returned when the request timeout of the control
	// API expired before the backend answered.
	MsgRequestTimedOut = "request timed out"

	// MsgNotFound is returned for an unknown route.
	MsgNotFound = "not found"

	// MsgMethodNotAllowed is returned when the route exists for other
	// methods only.
	MsgMethodNotAllowed = "method not allowed"
)
