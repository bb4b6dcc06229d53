// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"net/http"
	"strings"
)

const defaultImageExtension = "jpg"

var extensionsByMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
	"image/bmp":  "bmp",
}

// normalizeExtension returns ext without a leading dot, falling back to the
// type sniffed from data and finally to jpg.
func normalizeExtension(ext string, data []byte) string {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext != "" && !strings.ContainsAny(ext, `/\ `) {
		return ext
	}
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if e, ok := extensionsByMIME[mime]; ok {
		return e
	}
	return defaultImageExtension
}
