package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/osteo-vault/internal/validators"
	"github.com/MKhiriev/osteo-vault/models"
)

// EntityValidationService rejects malformed addresses and payloads before
// they are routed, so remote-bound records get the same checks as vault
// records.
type EntityValidationService struct {
	inner     EntityService
	validator validators.Validator
}

func NewEntityValidationService() EntityServiceWrapper {
	return &EntityValidationService{
		validator: validators.NewRecordValidator(),
	}
}

func (v *EntityValidationService) Get(ctx context.Context, entityType models.EntityType, id string) (models.Record, error) {
	in := validators.RecordInput{EntityType: entityType, ID: id}
	if err := v.validator.Validate(ctx, in, validators.FieldEntityType, validators.FieldID); err != nil {
		return nil, fmt.Errorf("invalid record address: %w", err)
	}
	return v.inner.Get(ctx, entityType, id)
}

func (v *EntityValidationService) Put(ctx context.Context, entityType models.EntityType, id string, record models.Record) error {
	in := validators.RecordInput{EntityType: entityType, ID: id, Payload: record}
	if err := v.validator.Validate(ctx, in); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	return v.inner.Put(ctx, entityType, id, record)
}

func (v *EntityValidationService) Delete(ctx context.Context, entityType models.EntityType, id string) error {
	in := validators.RecordInput{EntityType: entityType, ID: id}
	if err := v.validator.Validate(ctx, in, validators.FieldEntityType, validators.FieldID); err != nil {
		return fmt.Errorf("invalid record address: %w", err)
	}
	return v.inner.Delete(ctx, entityType, id)
}

func (v *EntityValidationService) List(ctx context.Context, entityType models.EntityType) ([]string, error) {
	in := validators.RecordInput{EntityType: entityType}
	if err := v.validator.Validate(ctx, in, validators.FieldEntityType); err != nil {
		return nil, fmt.Errorf("invalid entity type: %w", err)
	}
	return v.inner.List(ctx, entityType)
}

func (v *EntityValidationService) Wrap(inner EntityService) EntityService {
	v.inner = inner
	return v
}
