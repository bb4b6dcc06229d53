// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

const (
	ivUnits   = 16
	saltUnits = 48
)

// Supported values of the crypto.scheme setting.
const (
	SchemeXOR = "xor"
	SchemeAES = "aes"
)

// DecryptionContext is the key material derived from the shared salt.
// The zero value is not usable; obtain one from [Cipher.DeriveContext].
type DecryptionContext struct {
	salt string
	iv   []uint16
	key  []uint16
}

// IV returns the initialization vector as text (salt characters 0..15).
func (dc DecryptionContext) IV() string { return string(utf16.Decode(dc.iv)) }

// Key returns the key as text (salt characters 16..47).
func (dc DecryptionContext) Key() string { return string(utf16.Decode(dc.key)) }

func (dc DecryptionContext) valid() bool {
	return len(dc.iv) == ivUnits && len(dc.key) == saltUnits-ivUnits
}

func deriveContext(salt string) (DecryptionContext, error) {
	units := utf16.Encode([]rune(salt))
	if len(units) < saltUnits {
		return DecryptionContext{}, fmt.Errorf("%w: need at least %d characters, got %d", ErrInvalidSalt, saltUnits, len(units))
	}
	return DecryptionContext{
		salt: salt,
		iv:   append([]uint16(nil), units[:ivUnits]...),
		key:  append([]uint16(nil), units[ivUnits:saltUnits]...),
	}, nil
}

// New returns the [Cipher] for scheme. An empty scheme selects the legacy
// XOR scheme.
func New(scheme string) (Cipher, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemeXOR:
		return NewXORCipher(), nil
	case SchemeAES:
		return NewAESCipher(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}
