// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/internal/validators"
	"github.com/MKhiriev/go-note-sync/models"
)

// SyncDeps are the collaborators of [NewSyncService].
type SyncDeps struct {
	Backend     adapter.BackendAdapter
	State       store.StateStore
	Transformer ContentTransformer
	Writer      DocumentWriter
	Cipher      crypto.Cipher
	Notifier    Notifier
	// Validator rejects malformed records before they are transformed.
	// Nil means [validators.NewRecordValidator].
	Validator validators.Validator

	// Logger nil means [logger.Nop].
	Logger *logger.Logger
}

type syncService struct {
	backend     adapter.BackendAdapter
	state       store.StateStore
	transformer ContentTransformer
	writer      DocumentWriter
	cipher      crypto.Cipher
	notifier    Notifier
	validator   validators.Validator

	config  atomic.Pointer[models.SyncConfig]
	busy    atomic.Bool
	current atomic.Int32

	mu   sync.RWMutex
	last *models.SyncResult

	ids *utils.UUIDGenerator
	now func() time.Time

	logger *logger.Logger
}

// NewSyncService returns the [SyncService] driving the
// fetch → transform → write → acknowledge pipeline. cfg is the configuration
// of the first pass; it is pushed to the backend adapter right away.
func NewSyncService(cfg models.SyncConfig, deps SyncDeps) SyncService {
	s := &syncService{
		backend:     deps.Backend,
		state:       deps.State,
		transformer: deps.Transformer,
		writer:      deps.Writer,
		cipher:      deps.Cipher,
		notifier:    deps.Notifier,
		validator:   deps.Validator,
		ids:         utils.NewUUIDGenerator(),
		now:         time.Now,
		logger:      deps.Logger,
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	if s.notifier == nil {
		s.notifier = NewLogNotifier("", s.logger)
	}
	if s.validator == nil {
		s.validator = validators.NewRecordValidator()
	}

	s.UpdateConfig(cfg)
	return s
}

func (s *syncService) UpdateConfig(cfg models.SyncConfig) {
	s.config.Store(&cfg)
	s.backend.SetToken(cfg.Token)
}

func (s *syncService) Config() models.SyncConfig {
	return *s.config.Load()
}

func (s *syncService) Status() Status {
	st := Status{
		State:      models.SyncState(s.current.Load()),
		Running:    s.busy.Load(),
		Configured: s.Config().Ready(),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last != nil {
		last := *s.last
		st.LastResult = &last
	}
	return st
}

func (s *syncService) Quota(ctx context.Context) (models.Quota, error) {
	if s.Config().Token == "" {
		return models.Quota{}, fmt.Errorf("%w: token is empty", ErrConfiguration)
	}
	return s.backend.GetQuota(ctx)
}

// Sync implements [SyncService].
//
// Processing is strictly sequential in backend order. A record is
// acknowledged only after its fragment was appended; records that were
// appended by an earlier pass whose acknowledgement failed are not appended
// again but are acknowledged with this pass.
func (s *syncService) Sync(ctx context.Context, trigger models.SyncTrigger) (models.SyncResult, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return models.SyncResult{Trigger: trigger}, ErrSyncInProgress
	}
	defer s.busy.Store(false)

	result := models.SyncResult{
		PassID:     s.ids.Generate(),
		Trigger:    trigger,
		WrittenIDs: []string{},
		StartedAt:  s.now(),
	}

	log := &logger.Logger{Logger: s.logger.With().
		Str("pass_id", result.PassID).
		Str("trigger", string(trigger)).
		Logger()}
	ctx = log.WithContext(ctx)

	err := s.run(ctx, s.Config(), &result)
	result.FinishedAt = s.now()

	s.mu.Lock()
	last := result
	s.last = &last
	s.mu.Unlock()

	log.Info().
		Str("status", string(result.Status)).
		Int("fetched", result.Fetched).
		Int("written", len(result.WrittenIDs)).
		Int("failed", len(result.Failures)).
		Bool("acknowledged", result.Acknowledged).
		Dur("took", result.FinishedAt.Sub(result.StartedAt)).
		Msg("sync pass finished")

	return result, err
}

func (s *syncService) run(ctx context.Context, cfg models.SyncConfig, result *models.SyncResult) error {
	log := logger.FromContext(ctx)

	s.setState(models.StateValidating)
	if !cfg.Ready() {
		result.Status = models.StatusNotConfigured
		if result.Trigger.Interactive() {
			s.notifier.Notify(ctx, result.Message())
		}
		s.setState(models.StateIdle)
		return ErrConfiguration
	}

	s.setState(models.StateFetching)
	records, err := s.backend.ListPendingRecords(ctx)
	if err != nil {
		return s.abort(ctx, result, err)
	}
	result.Fetched = len(records)

	if len(records) == 0 {
		result.Status = models.StatusNothingToSync
		if result.Trigger.Interactive() {
			s.notifier.Notify(ctx, result.Message())
		}
		s.setState(models.StateIdle)
		return nil
	}

	s.setState(models.StateProcessing)
	cursor, err := s.state.GetCursor(ctx)
	if err != nil {
		return s.abort(ctx, result, fmt.Errorf("read sync cursor: %w", err))
	}

	pass := PassContext{Config: cfg}
	pass.Keys, pass.KeysErr = s.cipher.DeriveContext(cfg.Salt)

	ackIDs := make([]string, 0, len(records))
	for _, record := range records {
		if err = ctx.Err(); err != nil {
			return s.abort(ctx, result, err)
		}

		recordLog := log.With().
			Str("record_id", record.ID).
			Str("content_type", string(record.ContentType)).
			Logger()

		// an unparsable createdAt is not fatal, the transformer stamps the
		// record with the pass time instead
		if err = s.validator.Validate(ctx, record, validators.FieldID, validators.FieldContentType); err != nil {
			recordLog.Warn().Err(err).Msg("malformed record rejected")
			result.Failures = append(result.Failures, models.RecordFailure{RecordID: record.ID, Reason: err.Error()})
			continue
		}

		written, err := s.state.IsWritten(ctx, record.ID)
		if err != nil {
			recordLog.Warn().Err(err).Msg("failed to look up written records, writing anyway")
		}
		if written {
			recordLog.Info().Msg("record was written by an earlier pass, acknowledging only")
			result.Skipped = append(result.Skipped, record.ID)
			ackIDs = append(ackIDs, record.ID)
			continue
		}

		fragment, err := s.transformer.Transform(ctx, record, pass)
		if err != nil {
			if ctx.Err() != nil {
				return s.abort(ctx, result, ctx.Err())
			}
			recordLog.Err(err).Msg("failed to transform record")
			result.Failures = append(result.Failures, models.RecordFailure{RecordID: record.ID, Reason: err.Error()})
			continue
		}

		cursor, err = s.writer.WriteFragment(ctx, cfg.DocumentID, fragment, cursor)
		if err != nil {
			if ctx.Err() != nil {
				return s.abort(ctx, result, ctx.Err())
			}
			recordLog.Err(err).Msg("failed to write record")
			result.Failures = append(result.Failures, models.RecordFailure{RecordID: record.ID, Reason: err.Error()})
			continue
		}

		result.WrittenIDs = append(result.WrittenIDs, record.ID)
		ackIDs = append(ackIDs, record.ID)
		if err = s.state.MarkWritten(ctx, record.ID); err != nil {
			recordLog.Warn().Err(err).Msg("failed to remember written record")
		}

		if fragment.Warning != "" {
			recordLog.Warn().Str("warning", fragment.Warning).Bool("placeholder", fragment.Failed).Msg("record written degraded")
			result.Warnings = append(result.Warnings, record.ID+": "+fragment.Warning)
			s.notifier.Notify(ctx, fragment.Warning)
		}
	}

	if len(ackIDs) > 0 {
		s.setState(models.StateAcknowledging)
		s.acknowledge(ctx, result, ackIDs)
	}

	result.Status = models.StatusCompleted
	if result.Trigger.Interactive() || len(result.WrittenIDs) > 0 {
		s.notifier.Notify(ctx, result.Message())
	}
	s.setState(models.StateIdle)
	return nil
}

// acknowledge reports ids to the backend. A failure is recorded in result
// and leaves the ids marked as written, so the next pass acknowledges them
// without writing them again.
func (s *syncService) acknowledge(ctx context.Context, result *models.SyncResult, ids []string) {
	log := logger.FromContext(ctx)

	if err := s.backend.Acknowledge(ctx, ids); err != nil {
		log.Err(err).Int("count", len(ids)).Msg("failed to acknowledge records")
		result.AckError = userMessage(err)
		return
	}
	result.Acknowledged = true

	if err := s.state.ClearWritten(ctx, ids); err != nil {
		log.Warn().Err(err).Msg("failed to forget acknowledged records")
	}
}

func (s *syncService) abort(ctx context.Context, result *models.SyncResult, err error) error {
	logger.FromContext(ctx).Err(err).Msg("sync pass aborted")

	result.Status = models.StatusAborted
	result.Error = userMessage(err)
	s.setState(models.StateAborted)

	if !errors.Is(err, context.Canceled) {
		s.notifier.Notify(ctx, result.Message())
	}
	return err
}

func (s *syncService) setState(state models.SyncState) {
	s.current.Store(int32(state))
}
