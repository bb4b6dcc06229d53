// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command notesync pulls captured notes from the note-push backend and
// appends them to a document of the local document store.
//
// Build information is injected at link time:
//
//	go build -ldflags "-X main.buildVersion=v1.0.0 -X main.buildDate=$(date -u +%F) -X main.buildCommit=$(git rev-parse --short HEAD)" ./cmd/notesync
package main

import (
	"os"

	"github.com/MKhiriev/go-note-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	root := newRootCmd(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
