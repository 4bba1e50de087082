// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/MKhiriev/osteo-vault/models"
	"github.com/go-playground/validator/v10"
)

// Field names accepted by RecordValidator.
const (
	FieldEntityType = "entity_type"
	FieldID         = "id"
	FieldPayload    = "payload"
)

var allFields = []string{FieldEntityType, FieldID, FieldPayload}

// RecordInput is the address and payload of a record write.
type RecordInput struct {
	EntityType models.EntityType
	ID         string `validate:"required,max=128,printascii"`
	Payload    models.Record
}

// RecordValidator checks record addresses and payloads before they reach
// storage.
type RecordValidator struct {
	validate *validator.Validate
}

// NewRecordValidator constructs a RecordValidator.
func NewRecordValidator() Validator {
	return &RecordValidator{validate: validator.New()}
}

// Validate accepts RecordInput or *RecordInput. Without fields every field is
// checked.
func (v *RecordValidator) Validate(_ context.Context, obj any, fields ...string) error {
	var in RecordInput
	switch value := obj.(type) {
	case RecordInput:
		in = value
	case *RecordInput:
		if value == nil {
			return ErrUnsupportedType
		}
		in = *value
	default:
		return ErrUnsupportedType
	}

	if len(fields) == 0 {
		fields = allFields
	}

	for _, f := range fields {
		if !slices.Contains(allFields, f) {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	if slices.Contains(fields, FieldEntityType) && !in.EntityType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidEntityType, in.EntityType)
	}
	if slices.Contains(fields, FieldID) {
		if err := v.validate.StructPartial(in, "ID"); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidID, in.ID)
		}
	}
	if slices.Contains(fields, FieldPayload) {
		if len(in.Payload) == 0 || !json.Valid(in.Payload) {
			return ErrInvalidRecord
		}
		if in.EntityType == models.Invoices {
			return validateInvoice(in.Payload)
		}
	}
	return nil
}

func validateInvoice(payload models.Record) error {
	var inv models.Invoice
	if err := json.Unmarshal(payload, &inv); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if inv.Total().IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, inv.Amount)
	}
	return nil
}
