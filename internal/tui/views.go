// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/models"
)

const timeLayout = "2006-01-02 15:04"

type row struct {
	key   string
	value string
}

func renderBox(title string, rows []row, extra ...string) string {
	lines := []string{titleStyle.Render(title)}
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(r.key), r.value))
	}
	lines = append(lines, extra...)
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func statusStyle(status models.SyncStatus) lipgloss.Style {
	switch status {
	case models.StatusCompleted, models.StatusNothingToSync:
		return okStyle
	case models.StatusNotConfigured:
		return warnStyle
	default:
		return errorStyle
	}
}

// RenderSyncResult renders the outcome of one pass, listing every failed
// record and warning.
func RenderSyncResult(r models.SyncResult) string {
	rows := []row{
		{"status", statusStyle(r.Status).Render(string(r.Status))},
		{"message", r.Message()},
	}
	if r.PassID != "" {
		rows = append(rows, row{"pass", r.PassID})
	}
	if r.Fetched > 0 {
		rows = append(rows,
			row{"written", fmt.Sprintf("%d of %d", len(r.WrittenIDs), r.Fetched)},
			row{"acknowledged", yesNo(r.Acknowledged)},
		)
	}
	if len(r.Skipped) > 0 {
		rows = append(rows, row{"skipped", fmt.Sprintf("%d already written", len(r.Skipped))})
	}
	if !r.StartedAt.IsZero() && !r.FinishedAt.IsZero() {
		rows = append(rows, row{"took", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String()})
	}

	var extra []string
	for _, f := range r.Failures {
		extra = append(extra, errorStyle.Render("✗ ")+f.RecordID+": "+f.Reason)
	}
	for _, w := range r.Warnings {
		extra = append(extra, warnStyle.Render("! ")+w)
	}

	return renderBox("Sync", rows, extra...)
}

// RenderStatus renders the control API status of a running daemon.
func RenderStatus(st service.Status) string {
	rows := []row{
		{"state", st.State.String()},
		{"running", yesNo(st.Running)},
		{"configured", yesNo(st.Configured)},
	}
	if st.LastResult != nil {
		rows = append(rows, row{"last pass", st.LastResult.Message()})
		if !st.LastResult.FinishedAt.IsZero() {
			rows = append(rows, row{"finished", st.LastResult.FinishedAt.Local().Format(timeLayout)})
		}
	}
	return renderBox("Daemon", rows)
}

// RenderQuota renders the account plan as of now.
func RenderQuota(q models.Quota, now time.Time) string {
	plan := "free"
	if q.IsPaid(now) {
		plan = okStyle.Render("paid") + " until " + q.PaidExpiresAt.Local().Format(timeLayout)
	} else if q.PaidExpiresAt != nil {
		plan = warnStyle.Render("expired") + " on " + q.PaidExpiresAt.Local().Format(timeLayout)
	}

	rows := []row{
		{"user", q.UserID},
		{"plan", plan},
		{"notes", usage(q.NoteQuota)},
		{"links", usage(q.LinkQuota)},
	}
	return renderBox("Quota", rows)
}

// RenderBuildInfo renders the version, commit and build date.
func RenderBuildInfo(name string, info models.AppBuildInfo) string {
	return renderBox(name, []row{
		{"version", info.Version()},
		{"commit", valueOrNA(info.BuildCommit())},
		{"built", valueOrNA(info.BuildDate())},
	})
}

func usage(u *models.QuotaUsage) string {
	if u == nil {
		return "-"
	}
	if u.Limit == nil {
		return fmt.Sprintf("%d / unlimited", u.Used)
	}
	s := fmt.Sprintf("%d / %d", u.Used, *u.Limit)
	if u.Used >= *u.Limit {
		return errorStyle.Render(s)
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
