// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyRecordID      = errors.New("record id is empty")
	ErrInvalidCreatedAt   = errors.New("record creation time is not a valid timestamp")
	ErrInvalidContentType = errors.New("unsupported content type")
	ErrEmptyIDs           = errors.New("IDs list cannot be empty")
)
