// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrConfiguration          = errors.New("sync is not configured")
	ErrSyncInProgress         = errors.New("a sync pass is already running")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrTransformPanic         = errors.New("content transformer panicked")
	ErrIncompleteHandlerTable = errors.New("content handler table is incomplete")
)
