// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
)

// aesCipher implements the password-based scheme used by newer capture
// clients: AES-128-CBC with PKCS#7 padding, the key derived from the full
// salt string with PBKDF2-SHA256.
//
//	blob = kdfSalt(16) ‖ iv(16) ‖ ciphertext
//
// Text travels as base64(blob); images travel as the raw blob.
type aesCipher struct {
	iterations int
	keyLen     int
}

// NewAESCipher returns the AES-CBC [Cipher] with 10 000 PBKDF2 iterations
// and a 128-bit key.
func NewAESCipher() Cipher {
	return &aesCipher{
		iterations: 10000,
		keyLen:     16,
	}
}

const (
	kdfSaltSize = 16
	headerSize  = kdfSaltSize + aes.BlockSize
)

// DeriveContext accepts any non-empty password; the whole string feeds
// PBKDF2, so the 48-character rule of the legacy scheme does not apply.
func (a *aesCipher) DeriveContext(salt string) (DecryptionContext, error) {
	if salt == "" {
		return DecryptionContext{}, fmt.Errorf("%w: empty password", ErrInvalidSalt)
	}
	return DecryptionContext{salt: salt}, nil
}

func (a *aesCipher) DecryptText(ciphertext string, dc DecryptionContext) (string, error) {
	raw, err := decodeBase64(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: bad base64: %v", ErrDecrypt, err)
	}

	plain, err := a.open(raw, dc)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", fmt.Errorf("%w: %w", ErrDecrypt, errMalformedText)
	}
	return string(plain), nil
}

func (a *aesCipher) EncryptText(plain string, dc DecryptionContext) (string, error) {
	blob, err := a.seal([]byte(plain), dc)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

func (a *aesCipher) DecryptImage(payload []byte, dc DecryptionContext) (DecryptedImage, error) {
	data, err := a.open(payload, dc)
	if err != nil {
		return DecryptedImage{}, err
	}
	return DecryptedImage{Data: data, Extension: normalizeExtension("", data)}, nil
}

func (a *aesCipher) EncryptImage(img DecryptedImage, dc DecryptionContext) ([]byte, error) {
	return a.seal(img.Data, dc)
}

func (a *aesCipher) key(dc DecryptionContext, kdfSalt []byte) []byte {
	return pbkdf2.Key([]byte(dc.salt), kdfSalt, a.iterations, a.keyLen, sha256.New)
}

func (a *aesCipher) seal(plain []byte, dc DecryptionContext) ([]byte, error) {
	if dc.salt == "" {
		return nil, ErrInvalidSalt
	}

	blob := make([]byte, headerSize, headerSize+len(plain)+aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, blob[:headerSize]); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(a.key(dc, blob[:kdfSaltSize]))
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(plain, aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, blob[kdfSaltSize:headerSize]).CryptBlocks(ct, padded)

	return append(blob, ct...), nil
}

func (a *aesCipher) open(blob []byte, dc DecryptionContext) ([]byte, error) {
	if dc.salt == "" {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, ErrInvalidSalt)
	}
	if len(blob) < headerSize+aes.BlockSize || (len(blob)-headerSize)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext has invalid length %d", ErrDecrypt, len(blob))
	}

	block, err := aes.NewCipher(a.key(dc, blob[:kdfSaltSize]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	ct := blob[headerSize:]
	out := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, blob[kdfSaltSize:headerSize]).CryptBlocks(out, ct)

	plain, ok := pkcs7Unpad(out, aes.BlockSize)
	if !ok {
		// CBC has no integrity check; bad padding is the usual symptom of a wrong salt.
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, ErrSaltMismatch)
	}
	return plain, nil
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(append([]byte(nil), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, size int) ([]byte, bool) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, false
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
