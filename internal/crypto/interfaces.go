// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// Cipher decrypts the payloads produced by the note-push backend and its
// capture clients. Every implementation is a pure function of its inputs:
// it holds no state, performs no I/O and is safe for concurrent use.
//
// Key material is derived once per pass with DeriveContext and then passed
// to every call, so that a salt change between passes never mixes keys
// within one batch.
type Cipher interface {
	// DeriveContext prepares the key material used by the other methods.
	// Fails with [ErrInvalidSalt] when salt does not fit the scheme: the
	// legacy XOR scheme needs at least 48 UTF-16 code units, AES any
	// non-empty password.
	DeriveContext(salt string) (DecryptionContext, error)

	// DecryptText recovers a text note from its base64 transport form.
	// Every failure wraps [ErrDecrypt].
	DecryptText(ciphertext string, dc DecryptionContext) (string, error)

	// EncryptText is the inverse of DecryptText.
	EncryptText(plain string, dc DecryptionContext) (string, error)

	// DecryptImage recovers image bytes and their file extension from the
	// body of an encrypted image download. Every failure wraps [ErrDecrypt].
	DecryptImage(payload []byte, dc DecryptionContext) (DecryptedImage, error)

	// EncryptImage is the inverse of DecryptImage.
	EncryptImage(img DecryptedImage, dc DecryptionContext) ([]byte, error)
}

// DecryptedImage is a decrypted image together with the file extension the
// producer recorded for it (without the leading dot).
type DecryptedImage struct {
	Data      []byte
	Extension string
}
