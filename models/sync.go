// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
	"time"
)

// SyncConfig is the per-pass view of the user configuration. The sync core
// only reads it; the configuration layer replaces it between passes.
type SyncConfig struct {
	// Token authenticates against the note-push backend.
	Token string

	// NotebookID is the notebook that holds the target document and
	// receives link sub-documents.
	NotebookID string

	// DocumentID is the document every block is appended to.
	DocumentID string

	// SyncInterval is the period of the recurring sync. Zero or negative
	// disables it.
	SyncInterval time.Duration

	// SyncOnLoad requests a pass right after start-up.
	SyncOnLoad bool

	// Salt is the shared secret for secretText and secretImage payloads.
	Salt string
}

// Ready reports whether the configuration allows a pass to contact the
// backend at all.
func (c SyncConfig) Ready() bool {
	return strings.TrimSpace(c.Token) != "" && c.NotebookID != "" && c.DocumentID != ""
}

// SyncState is a state of the sync pass state machine.
type SyncState int

const (
	StateIdle SyncState = iota
	StateValidating
	StateFetching
	StateProcessing
	StateAcknowledging
	StateAborted
)

func (s SyncState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateFetching:
		return "fetching"
	case StateProcessing:
		return "processing"
	case StateAcknowledging:
		return "acknowledging"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state name in JSON responses.
func (s SyncState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText for the known states.
func (s *SyncState) UnmarshalText(text []byte) error {
	for state := StateIdle; state <= StateAborted; state++ {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown sync state %q", text)
}

// SyncTrigger tells what started a pass.
type SyncTrigger string

const (
	TriggerManual SyncTrigger = "manual"
	TriggerTimer  SyncTrigger = "timer"
	TriggerOnLoad SyncTrigger = "on_load"
)

// Interactive reports whether user notices should be shown for routine
// outcomes (missing configuration, nothing to sync).
func (t SyncTrigger) Interactive() bool {
	return t != TriggerOnLoad
}

// SyncStatus is the final outcome of a pass.
type SyncStatus string

const (
	StatusCompleted     SyncStatus = "completed"
	StatusNothingToSync SyncStatus = "nothing_to_sync"
	StatusNotConfigured SyncStatus = "not_configured"
	StatusAborted       SyncStatus = "aborted"
)

// RecordFailure describes a record that could not be written during a pass.
type RecordFailure struct {
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
}

// SyncResult summarises a single pass.
type SyncResult struct {
	PassID       string          `json:"pass_id"`
	Trigger      SyncTrigger     `json:"trigger"`
	Status       SyncStatus      `json:"status"`
	Fetched      int             `json:"fetched"`
	WrittenIDs   []string        `json:"written_ids"`
	Skipped      []string        `json:"skipped,omitempty"`
	Failures     []RecordFailure `json:"failures,omitempty"`
	Warnings     []string        `json:"warnings,omitempty"`
	Acknowledged bool            `json:"acknowledged"`
	AckError     string          `json:"ack_error,omitempty"`
	Error        string          `json:"error,omitempty"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   time.Time       `json:"finished_at"`
}

// Message renders the one-line user notice for the result.
func (r SyncResult) Message() string {
	switch r.Status {
	case StatusNothingToSync:
		return "all records are already synced"
	case StatusNotConfigured:
		return "sync is not configured: set the token and select a notebook and document"
	case StatusAborted:
		return "sync failed: " + r.Error
	}

	msg := fmt.Sprintf("sync completed, %d of %d records written", len(r.WrittenIDs), r.Fetched)
	if len(r.Failures) > 0 {
		msg += fmt.Sprintf(", %d failed", len(r.Failures))
	}
	if r.AckError != "" {
		msg += ", acknowledge failed: " + r.AckError
	}
	return msg
}
