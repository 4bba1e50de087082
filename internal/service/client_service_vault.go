package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/osteo-vault/internal/crypto"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/internal/validators"
	"github.com/MKhiriev/osteo-vault/models"
)

type vaultStore struct {
	repo      store.VaultRepository
	keyChain  crypto.KeyChainService
	lock      LockService
	clock     Clock
	validator validators.Validator

	logger *logger.Logger
}

// NewVaultStore returns the encrypted [VaultStore]. Records are sealed with
// AES-256-GCM under the session key held by lock, with "entityType/id" as
// associated data so an entry cannot be moved to another address.
func NewVaultStore(repo store.VaultRepository, keyChain crypto.KeyChainService, lock LockService, clock Clock, logger *logger.Logger) VaultStore {
	if clock == nil {
		clock = SystemClock
	}
	return &vaultStore{
		repo:      repo,
		keyChain:  keyChain,
		lock:      lock,
		clock:     clock,
		validator: validators.NewRecordValidator(),
		logger:    logger,
	}
}

func (v *vaultStore) Put(ctx context.Context, entityType models.EntityType, id string, record models.Record) error {
	log := logger.FromContext(ctx)

	return v.lock.WithKey(func(key *crypto.SecretKey) error {
		in := validators.RecordInput{EntityType: entityType, ID: id, Payload: record}
		if err := v.validator.Validate(ctx, in); err != nil {
			return err
		}

		ciphertext, nonce, err := v.keyChain.Seal(key, record, models.EntryAAD(entityType, id))
		if err != nil {
			log.Err(err).Str("func", "vaultStore.Put").Str("entity_type", entityType.String()).Msg("failed to seal record")
			return fmt.Errorf("seal record: %w", err)
		}

		now := v.clock.Now().UTC()
		entry := models.VaultEntry{
			EntityType: entityType,
			ID:         id,
			Ciphertext: ciphertext,
			Nonce:      nonce,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := v.repo.PutEntry(ctx, entry); err != nil {
			return fmt.Errorf("store entry: %w", err)
		}
		return nil
	})
}

func (v *vaultStore) Get(ctx context.Context, entityType models.EntityType, id string) (models.Record, error) {
	log := logger.FromContext(ctx)

	var record models.Record
	err := v.lock.WithKey(func(key *crypto.SecretKey) error {
		in := validators.RecordInput{EntityType: entityType, ID: id}
		if err := v.validator.Validate(ctx, in, validators.FieldEntityType, validators.FieldID); err != nil {
			return err
		}

		entry, err := v.repo.GetEntry(ctx, entityType, id)
		if errors.Is(err, store.ErrEntryNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read entry: %w", err)
		}

		plaintext, err := v.keyChain.Open(key, entry.Ciphertext, entry.Nonce, entry.AAD())
		if err != nil {
			log.Warn().
				Str("func", "vaultStore.Get").
				Str("entity_type", entityType.String()).
				Str("id", id).
				Msg("entry failed authentication")
			return fmt.Errorf("%w: %s/%s", ErrIntegrity, entityType, id)
		}
		record = plaintext
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (v *vaultStore) Delete(ctx context.Context, entityType models.EntityType, id string) error {
	return v.lock.WithKey(func(*crypto.SecretKey) error {
		in := validators.RecordInput{EntityType: entityType, ID: id}
		if err := v.validator.Validate(ctx, in, validators.FieldEntityType, validators.FieldID); err != nil {
			return err
		}
		if err := v.repo.DeleteEntry(ctx, entityType, id); err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}
		return nil
	})
}

func (v *vaultStore) List(ctx context.Context, entityType models.EntityType) ([]string, error) {
	var ids []string
	err := v.lock.WithKey(func(*crypto.SecretKey) error {
		in := validators.RecordInput{EntityType: entityType}
		if err := v.validator.Validate(ctx, in, validators.FieldEntityType); err != nil {
			return err
		}

		var err error
		ids, err = v.repo.ListIDs(ctx, entityType)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
