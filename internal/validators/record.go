// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-note-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the backend identifier of a record.
	FieldID = "id"

	// FieldCreatedAt targets the capture time of a record.
	FieldCreatedAt = "created_at"

	// FieldContentType targets the payload encoding of a record.
	FieldContentType = "content_type"

	// FieldIDs targets the id list of an acknowledge request.
	FieldIDs = "ids"
)

// RecordValidator implements [Validator] for [models.NoteRecord] and
// [models.AcknowledgeRequest], by value or by pointer.
type RecordValidator struct {
}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate dispatches validation to the type-specific method. Without
// fields every field of the value is checked.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NoteRecord:
		return v.validateRecord(ctx, value, fields...)
	case *models.NoteRecord:
		return v.validateRecord(ctx, *value, fields...)

	case models.AcknowledgeRequest:
		return v.validateAcknowledgeRequest(ctx, value, fields...)
	case *models.AcknowledgeRequest:
		return v.validateAcknowledgeRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRecord(_ context.Context, record models.NoteRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldCreatedAt, FieldContentType}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(record.ID) == "" {
				return ErrEmptyRecordID
			}
		case FieldCreatedAt:
			if _, err := record.Timestamp(nil); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidCreatedAt, record.CreatedAt)
			}
		case FieldContentType:
			if !record.ContentType.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidContentType, record.ContentType)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateAcknowledgeRequest(_ context.Context, request models.AcknowledgeRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIDs}
	}

	for _, f := range fields {
		switch f {
		case FieldIDs:
			if len(request.IDs) == 0 {
				return ErrEmptyIDs
			}
			for i, id := range request.IDs {
				if strings.TrimSpace(id) == "" {
					return fmt.Errorf("validation error at index %d: %w", i, ErrEmptyRecordID)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
