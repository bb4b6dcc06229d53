// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/app"
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// ---- Fakes ----

type fakeSyncService struct {
	result   models.SyncResult
	err      error
	quota    models.Quota
	quotaErr error
	status   service.Status

	triggers []models.SyncTrigger
	ctxErr   error
}

func (f *fakeSyncService) Sync(ctx context.Context, trigger models.SyncTrigger) (models.SyncResult, error) {
	f.triggers = append(f.triggers, trigger)
	f.ctxErr = ctx.Err()
	return f.result, f.err
}

func (f *fakeSyncService) UpdateConfig(models.SyncConfig) {}

func (f *fakeSyncService) Config() models.SyncConfig { return models.SyncConfig{} }

func (f *fakeSyncService) Status() service.Status { return f.status }

func (f *fakeSyncService) Quota(context.Context) (models.Quota, error) {
	return f.quota, f.quotaErr
}

// ---- Helpers ----

func newTestHandler(svc service.SyncService, authToken string) *Handler {
	services := service.NewServices(
		svc,
		service.NewAppInfoService(models.NewAppBuildInfo("1.2.3", "2026-01-02", "abc123"), logger.Nop()),
	)
	return NewHandler(services, config.ClientServer{AuthToken: authToken, RequestTimeout: time.Second}, logger.Nop())
}

func serve(t *testing.T, h *Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

// ---- Version ----

func TestGetVersion(t *testing.T) {
	h := newTestHandler(&fakeSyncService{}, "secret")

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"version":"1.2.3","commit":"abc123","date":"2026-01-02"}`, rec.Body.String())
}

// ---- Sync ----

func TestPostSync(t *testing.T) {
	tests := []struct {
		name        string
		result      models.SyncResult
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name: "completed",
			result: models.SyncResult{
				Status:     models.StatusCompleted,
				Fetched:    2,
				WrittenIDs: []string{"r1", "r2"},
			},
			wantStatus:  http.StatusOK,
			wantMessage: "sync completed, 2 of 2 records written",
		},
		{
			name:        "nothing to sync",
			result:      models.SyncResult{Status: models.StatusNothingToSync},
			wantStatus:  http.StatusOK,
			wantMessage: "all records are already synced",
		},
		{
			name:        "not configured",
			result:      models.SyncResult{Status: models.StatusNotConfigured},
			err:         service.ErrConfiguration,
			wantStatus:  http.StatusPreconditionFailed,
			wantMessage: "sync is not configured: set the token and select a notebook and document",
		},
		{
			name:        "backend rejected the token",
			result:      models.SyncResult{Status: models.StatusAborted, Error: adapter.ErrUnauthorized.Error()},
			err:         adapter.ErrUnauthorized,
			wantStatus:  http.StatusBadGateway,
			wantMessage: "sync failed: token invalid, please reconfigure it",
		},
		{
			name:        "server message",
			result:      models.SyncResult{Status: models.StatusAborted, Error: "quota exceeded"},
			err:         &adapter.ServerError{StatusCode: 400, Message: "quota exceeded"},
			wantStatus:  http.StatusBadGateway,
			wantMessage: "sync failed: quota exceeded",
		},
		{
			name:        "unexpected failure",
			result:      models.SyncResult{Status: models.StatusAborted, Error: "disk full"},
			err:         assert.AnError,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "sync failed: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSyncService{result: tt.result, err: tt.err}
			h := newTestHandler(svc, "")

			rec := serve(t, h, httptest.NewRequest(http.MethodPost, "/api/sync", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			var body syncResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.result.Status, body.Result.Status)
			assert.Equal(t, []models.SyncTrigger{models.TriggerManual}, svc.triggers)
		})
	}
}

func TestPostSync_InProgress(t *testing.T) {
	h := newTestHandler(&fakeSyncService{err: service.ErrSyncInProgress}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	req.Header.Set(traceIDHeader, "trace-1")
	rec := serve(t, h, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, service.ErrSyncInProgress.Error(), body.Error)
	assert.Equal(t, "trace-1", body.TraceID)
}

func TestPostSync_DetachedFromRequestCancellation(t *testing.T) {
	svc := &fakeSyncService{result: models.SyncResult{Status: models.StatusNothingToSync}}
	h := newTestHandler(svc, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil).WithContext(ctx)

	serve(t, h, req)

	require.Len(t, svc.triggers, 1)
	assert.NoError(t, svc.ctxErr)
}

// ---- Status and quota ----

func TestGetStatus(t *testing.T) {
	svc := &fakeSyncService{status: service.Status{
		State:      models.StateIdle,
		Configured: true,
		LastResult: &models.SyncResult{PassID: "p1", Status: models.StatusCompleted, WrittenIDs: []string{}},
	}}
	h := newTestHandler(svc, "")

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "idle", body["state"])
	assert.Equal(t, true, body["configured"])
	assert.Equal(t, false, body["running"])
	last, ok := body["last_result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "p1", last["pass_id"])
}

func TestGetQuota(t *testing.T) {
	limit := int64(100)
	svc := &fakeSyncService{quota: models.Quota{
		UserID:    "u1",
		NoteQuota: &models.QuotaUsage{Used: 3, Limit: &limit},
	}}
	h := newTestHandler(svc, "")

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/quota", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userId":"u1","noteQuota":{"used":3,"limit":100}}`, rec.Body.String())
}

func TestGetQuota_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "no token", err: service.ErrConfiguration, wantStatus: http.StatusPreconditionFailed, wantError: "sync is not configured"},
		{name: "bad token", err: adapter.ErrUnauthorized, wantStatus: http.StatusBadGateway, wantError: adapter.ErrUnauthorized.Error()},
		{name: "network", err: adapter.ErrNetwork, wantStatus: http.StatusBadGateway, wantError: adapter.ErrNetwork.Error()},
		{name: "timeout", err: context.DeadlineExceeded, wantStatus: http.StatusGatewayTimeout, wantError: app.MsgRequestTimedOut},
		{name: "unexpected", err: errors.New("database is locked"), wantStatus: http.StatusInternalServerError, wantError: app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeSyncService{quotaErr: tt.err}, "")

			rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/quota", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decodeError(t, rec).Error)
		})
	}
}

// ---- Routing ----

func TestRoutes_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(&fakeSyncService{}, "")

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/sync", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))
}

func TestRoutes_NotFound(t *testing.T) {
	h := newTestHandler(&fakeSyncService{}, "")

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_CompressesJSON(t *testing.T) {
	h := newTestHandler(&fakeSyncService{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := serve(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestRoutes_Auth(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		wantStatus int
	}{
		{name: "version is public", method: http.MethodGet, path: "/api/version", wantStatus: http.StatusOK},
		{name: "missing header", method: http.MethodGet, path: "/api/status", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", method: http.MethodGet, path: "/api/status", header: "Basic secret", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", method: http.MethodPost, path: "/api/sync", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "right token", method: http.MethodGet, path: "/api/status", header: "Bearer secret", wantStatus: http.StatusOK},
		{name: "lower-case scheme", method: http.MethodGet, path: "/api/status", header: "bearer secret", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeSyncService{}, "secret")

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(t, h, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRoutes_TraceIDHeader(t *testing.T) {
	h := newTestHandler(&fakeSyncService{}, "")

	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	traceID := rec.Header().Get(traceIDHeader)
	assert.NotEmpty(t, traceID)
	assert.Equal(t, 4, strings.Count(traceID, "-"))
}
