// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

var errMalformedText = errors.New("payload is not valid UTF-8")

// decodeBase64 accepts standard and URL-safe alphabets, with or without
// padding, and ignores embedded whitespace.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	var firstErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// unitsToBytes encodes UTF-16 code units as UTF-8. Unpaired surrogates,
// which the XOR step can produce for non-ASCII keys, are written with the
// generalized three-byte form so that bytesToUnits restores them exactly.
func unitsToBytes(units []uint16) []byte {
	out := make([]byte, 0, len(units)*3)
	for i := 0; i < len(units); i++ {
		u := units[i]
		if utf16.IsSurrogate(rune(u)) && u < 0xDC00 && i+1 < len(units) {
			if r := utf16.DecodeRune(rune(u), rune(units[i+1])); r != utf8.RuneError {
				out = utf8.AppendRune(out, r)
				i++
				continue
			}
		}
		if utf16.IsSurrogate(rune(u)) {
			out = append(out, 0xE0|byte(u>>12), 0x80|byte(u>>6)&0x3F, 0x80|byte(u)&0x3F)
			continue
		}
		out = utf8.AppendRune(out, rune(u))
	}
	return out
}

// bytesToUnits is the inverse of unitsToBytes.
func bytesToUnits(b []byte) ([]uint16, error) {
	units := make([]uint16, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			if len(b) >= 3 && b[0] == 0xED && b[1]&0xE0 == 0xA0 && b[2]&0xC0 == 0x80 {
				units = append(units, uint16(b[0]&0x0F)<<12|uint16(b[1]&0x3F)<<6|uint16(b[2]&0x3F))
				b = b[3:]
				continue
			}
			return nil, errMalformedText
		}
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			units = append(units, uint16(hi), uint16(lo))
		} else {
			units = append(units, uint16(r))
		}
		b = b[size:]
	}
	return units, nil
}

func xorUnits(in, key []uint16) []uint16 {
	out := make([]uint16, len(in))
	for i, u := range in {
		out[i] = u ^ key[i%len(key)]
	}
	return out
}

// xorBytes applies the low byte of each key unit to data.
func xorBytes(in []byte, key []uint16) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ byte(key[i%len(key)])
	}
	return out
}
