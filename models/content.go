// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ImageContent is a binary downloaded from the backend by reference.
type ImageContent struct {
	// Name is the file name announced in the Content-Disposition header.
	Name string

	// Data is the raw body.
	Data []byte
}

// LinkContent is the rendered snapshot of a saved web page.
type LinkContent struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// QuotaUsage is the used/limit pair of one quota bucket. A nil Limit means
// the bucket is unlimited.
type QuotaUsage struct {
	Used  int64  `json:"used"`
	Limit *int64 `json:"limit,omitempty"`
}

// Quota describes the account plan of the token owner.
type Quota struct {
	UserID        string      `json:"userId"`
	PaidExpiresAt *time.Time  `json:"paidExpiresAt,omitempty"`
	NoteQuota     *QuotaUsage `json:"noteQuota,omitempty"`
	LinkQuota     *QuotaUsage `json:"linkQuota,omitempty"`
}

// IsPaid reports whether the plan is paid and not yet expired at now.
func (q Quota) IsPaid(now time.Time) bool {
	return q.PaidExpiresAt != nil && q.PaidExpiresAt.After(now)
}
