package store

import (
	"context"

	"github.com/MKhiriev/osteo-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// VaultRepository persists vault metadata and encrypted entries. It never
// sees plaintext or key material.
type VaultRepository interface {
	// GetMeta returns the vault metadata or ErrMetaNotFound.
	GetMeta(ctx context.Context) (*models.VaultMeta, error)
	// SaveMeta writes the single metadata record.
	SaveMeta(ctx context.Context, meta models.VaultMeta) error

	// PutEntry inserts or replaces one entry. CreatedAt of an existing entry
	// is preserved.
	PutEntry(ctx context.Context, entry models.VaultEntry) error
	// GetEntry returns one entry or ErrEntryNotFound.
	GetEntry(ctx context.Context, entityType models.EntityType, id string) (*models.VaultEntry, error)
	// DeleteEntry removes one entry. Deleting a missing entry is not an error.
	DeleteEntry(ctx context.Context, entityType models.EntityType, id string) error
	// ListIDs returns the ids stored for entityType in ascending order.
	ListIDs(ctx context.Context, entityType models.EntityType) ([]string, error)
	// AllEntries returns every entry ordered by (entity type, id).
	AllEntries(ctx context.Context) ([]models.VaultEntry, error)

	// ReplaceAll atomically swaps the whole vault content for meta and
	// entries. On error the previous content is untouched.
	ReplaceAll(ctx context.Context, meta models.VaultMeta, entries []models.VaultEntry) error

	// Close releases the underlying medium.
	Close() error
}

// RemoteRecordRepository is the Postgres table behind the direct-database
// remote adapter.
type RemoteRecordRepository interface {
	Get(ctx context.Context, entityType models.EntityType, id string, ephemeral bool) (*models.RemoteRecord, error)
	Put(ctx context.Context, record models.RemoteRecord, ephemeral bool) error
	Delete(ctx context.Context, entityType models.EntityType, id string, ephemeral bool) error
	List(ctx context.Context, entityType models.EntityType, ephemeral bool) ([]string, error)
	PurgeEphemeral(ctx context.Context) (int64, error)
	Close() error
}

// ErrorClassificator decides whether a failed database operation may
// succeed when retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
