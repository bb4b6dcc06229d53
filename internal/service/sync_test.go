// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/mock"
	"github.com/MKhiriev/go-note-sync/internal/validators"
	"github.com/MKhiriev/go-note-sync/models"
)

// ─────────────────────────────────────────────
// Fake: store.StateStore
// ─────────────────────────────────────────────

type memStateStore struct {
	mu      sync.Mutex
	cursor  models.SyncCursor
	written map[string]bool
}

func newMemStateStore() *memStateStore {
	return &memStateStore{written: make(map[string]bool)}
}

func (m *memStateStore) GetCursor(context.Context) (models.SyncCursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor, nil
}

func (m *memStateStore) SaveCursor(_ context.Context, c models.SyncCursor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = c
	return nil
}

func (m *memStateStore) MarkWritten(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.written[id] = true
	return nil
}

func (m *memStateStore) IsWritten(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.written[id], nil
}

func (m *memStateStore) ClearWritten(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.written, id)
	}
	return nil
}

func (m *memStateStore) Close() error { return nil }

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

type syncFixture struct {
	backend *mock.MockBackendAdapter
	docs    *mock.MockDocumentStore
	assets  *mock.MockAssetStore
	state   *memStateStore
	cipher  crypto.Cipher

	mu      sync.Mutex
	blocks  []string
	notices []string

	svc SyncService
}

func readyConfig(salt string) models.SyncConfig {
	return models.SyncConfig{
		Token:      "token",
		NotebookID: "nb",
		DocumentID: "doc",
		SyncOnLoad: true,
		Salt:       salt,
	}
}

func newSyncFixture(t *testing.T, cfg models.SyncConfig) *syncFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &syncFixture{
		backend: mock.NewMockBackendAdapter(ctrl),
		docs:    mock.NewMockDocumentStore(ctrl),
		assets:  mock.NewMockAssetStore(ctrl),
		state:   newMemStateStore(),
		cipher:  crypto.NewXORCipher(),
	}
	f.backend.EXPECT().SetToken(gomock.Any()).AnyTimes()
	f.docs.EXPECT().AppendBlock(gomock.Any(), "doc", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, md string) error {
			if md == "reject me" {
				return errRemote
			}
			f.mu.Lock()
			defer f.mu.Unlock()
			f.blocks = append(f.blocks, md)
			return nil
		}).AnyTimes()

	tr, err := NewContentTransformer(TransformerDeps{
		Backend:   f.backend,
		Documents: f.docs,
		Assets:    f.assets,
		Cipher:    f.cipher,
		Images:    &stubLocalizer{},
		Location:  time.UTC,
		Logger:    logger.Nop(),
	})
	require.NoError(t, err)

	f.svc = NewSyncService(cfg, SyncDeps{
		Backend:     f.backend,
		State:       f.state,
		Transformer: tr,
		Writer:      NewDocumentWriter(f.docs, f.state, time.UTC, logger.Nop()),
		Cipher:      f.cipher,
		Notifier: NotifierFunc(func(_ context.Context, msg string) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.notices = append(f.notices, msg)
		}),
		Logger: logger.Nop(),
	})
	return f
}

func (f *syncFixture) appended() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.blocks...)
}

func (f *syncFixture) notified() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.notices...)
}

func textRecord(id, createdAt, content string) models.NoteRecord {
	return models.NoteRecord{ID: id, CreatedAt: createdAt, Content: content, ContentType: models.ContentText}
}

// ─────────────────────────────────────────────
// Sync
// ─────────────────────────────────────────────

func TestSync_NothingToSync(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, readyConfig(testSalt))
	f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return([]models.NoteRecord{}, nil)

	result, err := f.svc.Sync(ctx, models.TriggerManual)

	require.NoError(t, err)
	assert.Equal(t, models.StatusNothingToSync, result.Status)
	assert.Empty(t, f.appended())
	assert.Equal(t, []string{"all records are already synced"}, f.notified())
}

func TestSync_NothingToSyncOnLoadIsQuiet(t *testing.T) {
	f := newSyncFixture(t, readyConfig(testSalt))
	f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return(nil, nil)

	result, err := f.svc.Sync(context.Background(), models.TriggerOnLoad)

	require.NoError(t, err)
	assert.Equal(t, models.StatusNothingToSync, result.Status)
	assert.Empty(t, f.notified())
}

func TestSync_GroupsRecordsAndAcknowledgesThem(t *testing.T) {
	f := newSyncFixture(t, readyConfig(testSalt))
	f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return([]models.NoteRecord{
		textRecord("a", "2024-05-01T10:00:00Z", "first"),
		textRecord("b", "2024-05-01T10:00:10Z", "second"),
	}, nil)
	f.backend.EXPECT().Acknowledge(gomock.Any(), []string{"a", "b"}).Return(nil)

	result, err := f.svc.Sync(context.Background(), models.TriggerTimer)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, result.Status)
	assert.Equal(t, []string{"a", "b"}, result.WrittenIDs)
	assert.True(t, result.Acknowledged)
	assert.Equal(t, []string{"## 2024-05-01 10:00", "first", "second"}, f.appended())
	assert.Equal(t, []string{"sync completed, 2 of 2 records written"}, f.notified())

	cursor, _ := f.state.GetCursor(context.Background())
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC).UnixMilli(), cursor.LastWrittenTimestamp)
	assert.Empty(t, f.state.written)
}

func TestSync_ContinuesCursorOfPreviousPass(t *testing.T) {
	f := newSyncFixture(t, readyConfig(testSalt))
	require.NoError(t, f.state.SaveCursor(context.Background(), models.SyncCursor{
		LastWrittenTimestamp: time.Date(2024, 5, 1, 9, 58, 0, 0, time.UTC).UnixMilli(),
	}))
	f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return([]models.NoteRecord{
		textRecord("a", "2024-05-01T10:00:00Z", "within gap"),
	}, nil)
	f.backend.EXPECT().Acknowledge(gomock.Any(), []string{"a"}).Return(nil)

	_, err := f.svc.Sync(context.Background(), models.TriggerManual)

	require.NoError(t, err)
	assert.Equal(t, []string{"within gap"}, f.appended())
}

func TestSync_MixedContentWithWrongSalt(t *testing.T) {
	f := newSyncFixture(t, readyConfig(otherSalt))
	secret := encryptText(t, f.cipher, "top secret")
	data := []byte("\x89PNG\r\n\x1a\nabc")

	f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return([]models.NoteRecord{
		textRecord("t", "2024-05-01T10:00:00Z", "hello"),
		{ID: "i", CreatedAt: "2024-05-01T10:00:05Z", Content: "ref", ContentType: models.ContentImage},
		{ID: "s", CreatedAt: "2024-05-01T10:00:09Z", Content: secret, ContentType: models.ContentSecretText},
	}, nil)
	f.backend.EXPECT().FetchImageContent(gomock.Any(), "ref").Return(models.ImageContent{Name: "pic.png", Data: data}, nil)
	f.assets.EXPECT().UploadAsset(gomock.Any(), "pic.png", data).Return("assets/pic.png", nil)
	f.backend.EXPECT().Acknowledge(gomock.Any(), []string{"t", "i", "s"}).Return(nil)

	result, err := f.svc.Sync(context.Background(), models.TriggerManual)

	require.NoError(t, err)
	assert.Equal(t, []string{"t", "i", "s"}, result.WrittenIDs)
	require.Len(t, result.Warnings, 1)
	assert.True(t, strings.HasPrefix(result.Warnings[0], "s: failed to decrypt text"))

	blocks := f.appended()
	require.Len(t, blocks, 4)
	assert.Equal(t, "## 2024-05-01 10:00", blocks[0])
	assert.Equal(t, "hello", blocks[1])
	assert.Equal(t, "![image](assets/pic.png)", blocks[2])
	assert.True(t, strings.HasPrefix(blocks[3], secret+"\n\n> ⚠️ failed to decrypt text"))

	notices := f.notified()
	require.Len(t, notices, 2)
	assert.Contains(t, notices[0], "failed to decrypt text")
	assert.Equal(t, "sync completed, 3 of 3 records written", notices[1])
}

func TestSync_FailedRecordsAreNotAcknowledged(t *testing.T) {
	f := newSyncFixture(t, readyConfig(testSalt))
	f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return([]models.NoteRecord{
		textRecord("a", "2024-05-01T10:00:00Z", "ok"),
		textRecord("b", "2024-05-01T10:00:01Z", "reject me"),
		{ID: "c", CreatedAt: "2024-05-01T10:00:02Z", ContentType: "video"},
		textRecord("d", "2024-05-01T10:00:03Z", "also ok"),
	}, nil)
	f.backend.EXPECT().Acknowledge(gomock.Any(), []string{"a", "d"}).Return(nil)

	result, err := f.svc.Sync(context.Background(), models.TriggerManual)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d"}, result.WrittenIDs)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, "b", result.Failures[0].RecordID)
	assert.Equal(t, "c", result.Failures[1].RecordID)
	assert.Contains(t, result.Message(), "2 failed")
}

func TestSync_NothingWrittenSkipsAcknowledge(t *testing.T) {
	f := newSyncFixture(t, readyConfig(testSalt))
	f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return([]models.NoteRecord{
		{ID: "c", CreatedAt: "2024-05-01T10:00:02Z", ContentType: "video"},
	}, nil)

	result, err := f.svc.Sync(context.Background(), models.TriggerManual)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, result.Status)
	assert.False(t, result.Acknowledged)
	assert.Empty(t, result.WrittenIDs)
}

func TestSync_AcknowledgeFailureDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, readyConfig(testSalt))
	records := []models.NoteRecord{
		textRecord("a", "2024-05-01T10:00:00Z", "first"),
		textRecord("b", "2024-05-01T10:00:10Z", "second"),
	}

	gomock.InOrder(
		f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return(records, nil),
		f.backend.EXPECT().Acknowledge(gomock.Any(), []string{"a", "b"}).Return(adapter.ErrNetwork),
		f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return(records, nil),
		f.backend.EXPECT().Acknowledge(gomock.Any(), []string{"a", "b"}).Return(nil),
	)

	first, err := f.svc.Sync(ctx, models.TriggerManual)
	require.NoError(t, err)
	assert.False(t, first.Acknowledged)
	assert.Equal(t, adapter.ErrNetwork.Error(), first.AckError)
	assert.Contains(t, first.Message(), "acknowledge failed")

	second, err := f.svc.Sync(ctx, models.TriggerManual)
	require.NoError(t, err)
	assert.True(t, second.Acknowledged)
	assert.Empty(t, second.WrittenIDs)
	assert.Equal(t, []string{"a", "b"}, second.Skipped)

	assert.Equal(t, []string{"## 2024-05-01 10:00", "first", "second"}, f.appended())
	assert.Empty(t, f.state.written)
}

func TestSync_NotConfigured(t *testing.T) {
	tests := []struct {
		name        string
		trigger     models.SyncTrigger
		wantNotices int
	}{
		{name: "manual notifies", trigger: models.TriggerManual, wantNotices: 1},
		{name: "on load is quiet", trigger: models.TriggerOnLoad, wantNotices: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSyncFixture(t, models.SyncConfig{Token: "token"})

			result, err := f.svc.Sync(context.Background(), tt.trigger)

			assert.ErrorIs(t, err, ErrConfiguration)
			assert.Equal(t, models.StatusNotConfigured, result.Status)
			assert.Len(t, f.notified(), tt.wantNotices)
			assert.Equal(t, models.StateIdle, f.svc.Status().State)
		})
	}
}

func TestSync_AbortsOnBackendError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "unauthorized", err: adapter.ErrUnauthorized, wantMsg: "sync failed: token invalid, please reconfigure it"},
		{name: "network", err: adapter.ErrNetwork, wantMsg: "sync failed: server busy, please try again later"},
		{name: "server message", err: &adapter.ServerError{StatusCode: 400, Message: "quota exceeded"}, wantMsg: "sync failed: quota exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSyncFixture(t, readyConfig(testSalt))
			f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return(nil, tt.err)

			result, err := f.svc.Sync(context.Background(), models.TriggerTimer)

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, models.StatusAborted, result.Status)
			assert.Equal(t, []string{tt.wantMsg}, f.notified())

			status := f.svc.Status()
			assert.Equal(t, models.StateAborted, status.State)
			require.NotNil(t, status.LastResult)
			assert.Equal(t, models.StatusAborted, status.LastResult.Status)
		})
	}
}

func TestSync_CancelledMidPassIsNotAcknowledged(t *testing.T) {
	f := newSyncFixture(t, readyConfig(testSalt))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.backend.EXPECT().ListPendingRecords(gomock.Any()).
		DoAndReturn(func(context.Context) ([]models.NoteRecord, error) {
			cancel()
			return []models.NoteRecord{textRecord("a", "2024-05-01T10:00:00Z", "first")}, nil
		})

	result, err := f.svc.Sync(ctx, models.TriggerManual)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, models.StatusAborted, result.Status)
	assert.Empty(t, f.appended())
	assert.Empty(t, f.notified())
}

func TestSync_RejectsOverlappingPass(t *testing.T) {
	f := newSyncFixture(t, readyConfig(testSalt))
	started := make(chan struct{})
	release := make(chan struct{})

	f.backend.EXPECT().ListPendingRecords(gomock.Any()).
		DoAndReturn(func(context.Context) ([]models.NoteRecord, error) {
			close(started)
			<-release
			return nil, nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Sync(context.Background(), models.TriggerTimer)
		done <- err
	}()

	<-started
	assert.True(t, f.svc.Status().Running)
	assert.Equal(t, models.StateFetching, f.svc.Status().State)

	_, err := f.svc.Sync(context.Background(), models.TriggerManual)
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.svc.Status().Running)
}

func TestSync_UpdateConfigAppliesToNextPass(t *testing.T) {
	f := newSyncFixture(t, models.SyncConfig{})

	_, err := f.svc.Sync(context.Background(), models.TriggerManual)
	require.ErrorIs(t, err, ErrConfiguration)
	assert.False(t, f.svc.Status().Configured)

	f.svc.UpdateConfig(readyConfig(testSalt))
	assert.Equal(t, "doc", f.svc.Config().DocumentID)
	assert.True(t, f.svc.Status().Configured)

	f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return(nil, nil)
	result, err := f.svc.Sync(context.Background(), models.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNothingToSync, result.Status)
}

func TestSync_Quota(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		f := newSyncFixture(t, models.SyncConfig{})
		_, err := f.svc.Quota(context.Background())
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("delegates to backend", func(t *testing.T) {
		f := newSyncFixture(t, readyConfig(testSalt))
		want := models.Quota{UserID: "u1"}
		f.backend.EXPECT().GetQuota(gomock.Any()).Return(want, nil)

		got, err := f.svc.Quota(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

// ─────────────────────────────────────────────
// userMessage
// ─────────────────────────────────────────────

func TestUserMessage(t *testing.T) {
	assert.Empty(t, userMessage(nil))
	assert.Equal(t, "bad input", userMessage(&adapter.ServerError{StatusCode: 400, Message: "bad input"}))
	assert.Equal(t, adapter.ErrUnauthorized.Error(), userMessage(errors.Join(errRemote, adapter.ErrUnauthorized)))
	assert.Equal(t, "sync was interrupted", userMessage(context.DeadlineExceeded))
	assert.Equal(t, "remote failure", userMessage(errRemote))
}

// ─────────────────────────────────────────────
// Notifiers
// ─────────────────────────────────────────────

func TestMultiNotifier(t *testing.T) {
	var got []string
	collect := func(prefix string) Notifier {
		return NotifierFunc(func(_ context.Context, msg string) {
			got = append(got, prefix+msg)
		})
	}

	MultiNotifier{collect("a:"), NewLogNotifier("[sync] ", logger.Nop()), collect("b:")}.
		Notify(context.Background(), "hi")

	assert.Equal(t, []string{"a:hi", "b:hi"}, got)
}

func TestSync_MalformedRecordIsRejected(t *testing.T) {
	f := newSyncFixture(t, readyConfig(testSalt))
	f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return([]models.NoteRecord{
		{ID: " ", CreatedAt: "2024-05-01T09:00:00Z", Content: "x", ContentType: models.ContentText},
		textRecord("good", "2024-05-01T10:00:00Z", "fine"),
	}, nil)
	f.backend.EXPECT().Acknowledge(gomock.Any(), []string{"good"}).Return(nil)

	result, err := f.svc.Sync(context.Background(), models.TriggerManual)

	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, result.WrittenIDs)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Reason, validators.ErrEmptyRecordID.Error())
	assert.Equal(t, []string{"## 2024-05-01 10:00", "fine"}, f.appended())
}

func TestSync_UnparsableCreatedAtIsWrittenWithWarning(t *testing.T) {
	f := newSyncFixture(t, readyConfig(testSalt))
	f.backend.EXPECT().ListPendingRecords(gomock.Any()).Return([]models.NoteRecord{
		textRecord("late", "sometime yesterday", "still kept"),
	}, nil)
	f.backend.EXPECT().Acknowledge(gomock.Any(), []string{"late"}).Return(nil)

	result, err := f.svc.Sync(context.Background(), models.TriggerManual)

	require.NoError(t, err)
	assert.Equal(t, []string{"late"}, result.WrittenIDs)
	assert.Empty(t, result.Failures)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "unparsable createdAt")

	blocks := f.appended()
	require.Len(t, blocks, 2)
	assert.True(t, strings.HasPrefix(blocks[0], "## "))
	assert.Equal(t, "still kept", blocks[1])
}

func TestSync_NilLoggerFallsBackToNop(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockBackendAdapter(ctrl)
	backend.EXPECT().SetToken(gomock.Any()).AnyTimes()

	svc := NewSyncService(models.SyncConfig{}, SyncDeps{
		Backend: backend,
		State:   newMemStateStore(),
		Cipher:  crypto.NewXORCipher(),
	})

	var err error
	assert.NotPanics(t, func() {
		_, err = svc.Sync(context.Background(), models.TriggerManual)
	})
	assert.ErrorIs(t, err, ErrConfiguration)
}
