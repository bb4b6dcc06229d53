// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

const frameSeparator = ':'

// xorCipher implements the legacy scheme shared with the capture clients.
//
// Text: base64(utf8(iv + ":" + xor(utf16(plain), key))), the XOR applied
// per UTF-16 code unit with the 32-unit key repeating.
//
// Images: base64(xor(json({data, extension}), key)), optionally wrapped in
// an outer JSON object {"data": "..."} by the backend.
type xorCipher struct{}

// NewXORCipher returns the legacy XOR [Cipher].
func NewXORCipher() Cipher {
	return &xorCipher{}
}

type imageEnvelope struct {
	Data      string `json:"data"`
	Extension string `json:"extension,omitempty"`
}

func (x *xorCipher) DeriveContext(salt string) (DecryptionContext, error) {
	return deriveContext(salt)
}

// DecryptText implements [Cipher]. The IV carried in front of the
// separator must equal the IV derived from the salt; anything else is
// reported as [ErrSaltMismatch] so that a wrong salt never produces
// garbage plaintext.
func (x *xorCipher) DecryptText(ciphertext string, dc DecryptionContext) (string, error) {
	if !dc.valid() {
		return "", fmt.Errorf("%w: %w", ErrDecrypt, ErrInvalidSalt)
	}

	raw, err := decodeBase64(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: bad base64: %v", ErrDecrypt, err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrDecrypt)
	}

	units, err := bytesToUnits(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecrypt, err)
	}

	sep := slices.Index(units, frameSeparator)
	if sep < 0 {
		return "", fmt.Errorf("%w: missing IV separator", ErrDecrypt)
	}
	if len(units) <= ivUnits || units[ivUnits] != frameSeparator || !slices.Equal(units[:ivUnits], dc.iv) {
		return "", fmt.Errorf("%w: %w", ErrDecrypt, ErrSaltMismatch)
	}

	return string(unitsToBytes(xorUnits(units[ivUnits+1:], dc.key))), nil
}

func (x *xorCipher) EncryptText(plain string, dc DecryptionContext) (string, error) {
	if !dc.valid() {
		return "", ErrInvalidSalt
	}

	body, err := bytesToUnits([]byte(plain))
	if err != nil {
		return "", err
	}

	framed := make([]uint16, 0, ivUnits+1+len(body))
	framed = append(framed, dc.iv...)
	framed = append(framed, frameSeparator)
	framed = append(framed, xorUnits(body, dc.key)...)

	return base64.StdEncoding.EncodeToString(unitsToBytes(framed)), nil
}

func (x *xorCipher) DecryptImage(payload []byte, dc DecryptionContext) (DecryptedImage, error) {
	if !dc.valid() {
		return DecryptedImage{}, fmt.Errorf("%w: %w", ErrDecrypt, ErrInvalidSalt)
	}

	raw, err := decodeBase64(unwrapImagePayload(payload))
	if err != nil {
		return DecryptedImage{}, fmt.Errorf("%w: bad base64: %v", ErrDecrypt, err)
	}
	if len(raw) == 0 {
		return DecryptedImage{}, fmt.Errorf("%w: empty payload", ErrDecrypt)
	}

	var env imageEnvelope
	if err = json.Unmarshal(xorBytes(raw, dc.key), &env); err != nil {
		return DecryptedImage{}, fmt.Errorf("%w: envelope: %v", ErrDecrypt, err)
	}
	if env.Data == "" {
		return DecryptedImage{}, fmt.Errorf("%w: envelope has no data", ErrDecrypt)
	}

	data, err := decodeBase64(stripDataURL(env.Data))
	if err != nil {
		return DecryptedImage{}, fmt.Errorf("%w: image data: %v", ErrDecrypt, err)
	}

	return DecryptedImage{Data: data, Extension: normalizeExtension(env.Extension, data)}, nil
}

func (x *xorCipher) EncryptImage(img DecryptedImage, dc DecryptionContext) ([]byte, error) {
	if !dc.valid() {
		return nil, ErrInvalidSalt
	}

	env, err := json.Marshal(imageEnvelope{
		Data:      base64.StdEncoding.EncodeToString(img.Data),
		Extension: img.Extension,
	})
	if err != nil {
		return nil, err
	}

	return []byte(base64.StdEncoding.EncodeToString(xorBytes(env, dc.key))), nil
}

// unwrapImagePayload returns the base64 text of an encrypted image body,
// removing the optional {"data": "..."} wrapper.
func unwrapImagePayload(payload []byte) string {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var outer struct {
			Data string `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &outer); err == nil && outer.Data != "" {
			return outer.Data
		}
	}
	if len(trimmed) > 1 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

func stripDataURL(s string) string {
	if strings.HasPrefix(s, "data:") {
		if i := strings.IndexByte(s, ','); i >= 0 {
			return s[i+1:]
		}
	}
	return s
}
