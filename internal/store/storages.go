package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/logger"
)

// ClientStorages groups the client-side repositories. When the durable vault
// cannot be opened it still comes back usable, backed by memory, with
// Degraded set so the UI can warn that nothing will survive a restart.
type ClientStorages struct {
	// Vault holds metadata and encrypted entries.
	Vault VaultRepository

	// Degraded is true when Vault is the in-memory fallback.
	Degraded bool

	// DegradedReason is a user-facing explanation of the fallback.
	DegradedReason string

	// Cause is the error that triggered the fallback, wrapping
	// ErrPersistenceUnavailable.
	Cause error
}

// NewClientStorages opens the SQLite vault at cfg.Vault.Path. On failure the
// error is logged and an in-memory repository is returned instead.
func NewClientStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) *ClientStorages {
	log.Info().Str("func", "NewClientStorages").Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.Vault.Path, log)
	if err != nil {
		cause := fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
		log.Err(cause).Str("func", "NewClientStorages").Msg("falling back to in-memory vault")
		return NewDegradedStorages(cause)
	}

	return &ClientStorages{
		Vault: NewVaultRepository(db, log),
	}
}

// NewDegradedStorages returns memory-backed storages flagged as degraded.
func NewDegradedStorages(cause error) *ClientStorages {
	reason := "Local storage is unavailable. Data entered now will be lost when the application closes."
	if errors.Is(cause, ErrVaultInUse) {
		reason = "The vault is open in another window. Data entered here will be lost when this window closes."
	}
	return &ClientStorages{
		Vault:          NewMemoryVaultRepository(),
		Degraded:       true,
		DegradedReason: reason,
		Cause:          cause,
	}
}

// NewMemoryStorages returns memory-backed storages that are not flagged as
// degraded, for demo sessions and tests.
func NewMemoryStorages() *ClientStorages {
	return &ClientStorages{Vault: NewMemoryVaultRepository()}
}

// Close releases the vault medium.
func (s *ClientStorages) Close() error {
	if s == nil || s.Vault == nil {
		return nil
	}
	return s.Vault.Close()
}
