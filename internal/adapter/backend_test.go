// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/validators"
	"github.com/MKhiriev/go-note-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T, serverURL string) *backendAdapter {
	t.Helper()
	a, err := NewBackendAdapter(config.ClientBackend{
		Address:        serverURL,
		Token:          " test-token ",
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return a.(*backendAdapter)
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.BackendResponse{Code: 0, Data: raw})
}

// ── ListPendingRecords ──────────────────────────────────────────────────────

func TestListPendingRecords_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/note/records", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		writeEnvelope(t, w, http.StatusOK, models.RecordList{List: []models.NoteRecord{
			{ID: "1", CreatedAt: "2024-05-01T10:00:00Z", Content: "hi", ContentType: models.ContentText},
			{ID: "2", CreatedAt: "2024-05-01T10:00:10Z", Content: "x", ContentType: models.ContentLink},
		}})
	}))
	defer srv.Close()

	a := newTestBackend(t, srv.URL)
	got, err := a.ListPendingRecords(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, models.ContentLink, got[1].ContentType)
}

func TestListPendingRecords_EmptyList(t *testing.T) {
	for name, body := range map[string]string{
		"null list":    `{"code":0,"data":{"list":null}}`,
		"missing list": `{"code":0,"data":{}}`,
		"missing data": `{"code":0}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			got, err := newTestBackend(t, srv.URL).ListPendingRecords(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestListPendingRecords_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"code":400,"message":"quota exceeded"}`, wantErr: ErrBadRequest, wantMsg: "quota exceeded"},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrNetwork},
		{name: "bad gateway", status: http.StatusBadGateway, wantErr: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestBackend(t, srv.URL).ListPendingRecords(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			if tt.wantMsg != "" {
				var serverErr *ServerError
				require.ErrorAs(t, err, &serverErr)
				assert.Equal(t, tt.wantMsg, serverErr.Message)
			}
		})
	}
}

func TestListPendingRecords_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	a := newTestBackend(t, srv.URL)
	srv.Close()

	_, err := a.ListPendingRecords(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

// ── FetchImageContent ───────────────────────────────────────────────────────

func TestFetchImageContent(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		wantName    string
		wantErr     error
	}{
		{name: "quoted", disposition: `attachment; filename="cat.png"`, wantName: "cat.png"},
		{name: "bare", disposition: `attachment; filename=cat.png`, wantName: "cat.png"},
		{name: "rfc 5987", disposition: `attachment; filename*=UTF-8''%E7%8C%AB.png`, wantName: "猫.png"},
		{name: "missing", disposition: "", wantErr: ErrMissingFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/files/42", r.URL.Path)
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
				if tt.disposition != "" {
					w.Header().Set("Content-Disposition", tt.disposition)
				}
				_, _ = w.Write([]byte("binary"))
			}))
			defer srv.Close()

			got, err := newTestBackend(t, srv.URL).FetchImageContent(context.Background(), srv.URL+"/files/42")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrNetwork)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, []byte("binary"), got.Data)
		})
	}
}

func TestFetchImageContent_RelativeReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/7", r.URL.Path)
		w.Header().Set("Content-Disposition", `inline; filename="a.jpg"`)
		_, _ = w.Write([]byte{1, 2})
	}))
	defer srv.Close()

	got, err := newTestBackend(t, srv.URL).FetchImageContent(context.Background(), "/files/7")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", got.Name)
}

// ── FetchLinkContent ────────────────────────────────────────────────────────

func TestFetchLinkContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/note/links/rec-9", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, models.LinkContent{Title: "Go blog", Content: "# Go"})
	}))
	defer srv.Close()

	got, err := newTestBackend(t, srv.URL).FetchLinkContent(context.Background(), "rec-9")
	require.NoError(t, err)
	assert.Equal(t, models.LinkContent{Title: "Go blog", Content: "# Go"}, got)
}

// ── Acknowledge ─────────────────────────────────────────────────────────────

func TestAcknowledge_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/note/records", r.URL.Path)

		var req models.AcknowledgeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"a", "b"}, req.IDs)

		_, _ = w.Write([]byte(`{"code":0}`))
	}))
	defer srv.Close()

	err := newTestBackend(t, srv.URL).Acknowledge(context.Background(), []string{"a", "b"})
	assert.NoError(t, err)
}

func TestAcknowledge_EmptyIsNoop(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	err := newTestBackend(t, srv.URL).Acknowledge(context.Background(), nil)
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestAcknowledge_BlankIDIsRejected(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	err := newTestBackend(t, srv.URL).Acknowledge(context.Background(), []string{"r1", " "})

	assert.ErrorIs(t, err, validators.ErrEmptyRecordID)
	assert.False(t, called)
}

func TestAcknowledge_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := newTestBackend(t, srv.URL).Acknowledge(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── GetQuota ────────────────────────────────────────────────────────────────

func TestGetQuota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/user/quota", r.URL.Path)
		_, _ = w.Write([]byte(`{"code":0,"data":{"userId":"u1","paidExpiresAt":"2030-01-01T00:00:00Z",` +
			`"noteQuota":{"used":3,"limit":100},"linkQuota":{"used":1}}}`))
	}))
	defer srv.Close()

	got, err := newTestBackend(t, srv.URL).GetQuota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, got.IsPaid(time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, got.NoteQuota)
	require.NotNil(t, got.NoteQuota.Limit)
	assert.EqualValues(t, 100, *got.NoteQuota.Limit)
	require.NotNil(t, got.LinkQuota)
	assert.Nil(t, got.LinkQuota.Limit)
}

// ── Token / construction ────────────────────────────────────────────────────

func TestSetToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer fresh", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"code":0,"data":{"list":[]}}`))
	}))
	defer srv.Close()

	a := newTestBackend(t, srv.URL)
	assert.Equal(t, "test-token", a.Token())

	a.SetToken("fresh")
	_, err := a.ListPendingRecords(context.Background())
	require.NoError(t, err)
}

func TestNewBackendAdapter_InvalidAddress(t *testing.T) {
	_, err := NewBackendAdapter(config.ClientBackend{}, logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyAddress)

	_, err = NewBackendAdapter(config.ClientBackend{Address: "http://"}, logger.Nop())
	assert.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL("localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	got, err = normalizeBaseURL(" https://api.example.com ")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", got)
}
