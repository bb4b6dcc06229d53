// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the local control API of the sync daemon.
//
// It exposes a manual sync trigger, the sync status, the account quota and
// the build version. Request tracing, access logging, response compression
// and the optional bearer token check are handled here before requests are
// delegated to the service layer.
package http
