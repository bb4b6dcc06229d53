// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	ErrInvalidSalt   = errors.New("invalid salt")
	ErrDecrypt       = errors.New("decryption failed")
	ErrSaltMismatch  = errors.New("payload was encrypted with a different salt")
	ErrUnknownScheme = errors.New("unknown encryption scheme")
)
