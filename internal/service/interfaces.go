// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/osteo-vault/internal/crypto"
	"github.com/MKhiriev/osteo-vault/models"
)

// LockService is the lock/unlock state machine of the encrypted vault and
// the single holder of the session key.
//
// The vault starts Locked. Configure and Unlock move it to Unlocked; Lock,
// an inactivity timeout and logout move it back, zeroing the key.
type LockService interface {
	// Configure creates the vault: generates a salt, derives the key from
	// credential, seals the canary, persists the metadata and leaves the
	// vault Unlocked. Fails with ErrVaultAlreadyConfigured when metadata
	// already exists and with ErrWeakCredential when the credential does not
	// meet the policy.
	Configure(ctx context.Context, credential string) error

	// Unlock derives a key from credential and the stored salt and checks it
	// against the canary. A wrong credential and a missing vault both return
	// false with a nil error and cost one derivation each. A weak credential
	// returns ErrWeakCredential; an unlocked vault returns ErrAlreadyUnlocked.
	Unlock(ctx context.Context, credential string) (bool, error)

	// Lock zeroes and drops the session key. Locking a locked vault is a
	// no-op.
	Lock()

	// Logout locks with the logout reason.
	Logout()

	// IsUnlocked reports whether a session key is held.
	IsUnlocked() bool

	// State returns a snapshot safe to show to the user.
	State() models.LockStatus

	// Configured re-reads whether vault metadata exists.
	Configured(ctx context.Context) (bool, error)

	// Touch records user activity and resets the inactivity timer.
	Touch()

	// CheckInactivity locks the vault when it has been idle for the
	// configured timeout. It returns true when it locked.
	CheckInactivity() bool

	// Subscribe registers fn to be called after every state transition.
	// Callbacks run synchronously on the transitioning goroutine and must
	// not block.
	Subscribe(fn func(models.LockEvent))

	// WithKey runs fn with the session key while holding the state read
	// lock, so a concurrent lock waits for fn to return. It fails with
	// ErrVaultLocked without calling fn when no key is held.
	WithKey(fn func(key *crypto.SecretKey) error) error

	// Replace runs apply under the state write lock and, on success, installs
	// key as the session key. On failure key is destroyed and the state is
	// unchanged. A configured vault must be unlocked to be replaced.
	Replace(ctx context.Context, key *crypto.SecretKey, apply func(ctx context.Context) error) error
}

// VaultStore reads and writes encrypted records. Every operation fails with
// ErrVaultLocked before touching storage when the vault is locked.
type VaultStore interface {
	// Put encrypts record and stores it under (entityType, id).
	Put(ctx context.Context, entityType models.EntityType, id string, record models.Record) error
	// Get returns the decrypted record, nil when absent, or ErrIntegrity
	// when the stored entry fails authentication.
	Get(ctx context.Context, entityType models.EntityType, id string) (models.Record, error)
	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context, entityType models.EntityType, id string) error
	// List returns the ids stored for entityType in ascending order.
	List(ctx context.Context, entityType models.EntityType) ([]string, error)
}

// Router decides where records of an entity type live.
type Router interface {
	// Route is pure and deterministic for a given router.
	Route(entityType models.EntityType) models.RoutingDecision
	// RoutingTable returns the decision for every classified entity type,
	// ordered by entity type.
	RoutingTable() []models.RoutingDecision
	// DemoMode reports whether the demo override is active.
	DemoMode() bool
}

// EntityService is the uniform record API used by the UIs. It routes every
// call through the Router to the vault or to the remote backend.
type EntityService interface {
	Get(ctx context.Context, entityType models.EntityType, id string) (models.Record, error)
	Put(ctx context.Context, entityType models.EntityType, id string, record models.Record) error
	Delete(ctx context.Context, entityType models.EntityType, id string) error
	List(ctx context.Context, entityType models.EntityType) ([]string, error)
}

// EntityServiceWrapper defines middleware composition for EntityService.
type EntityServiceWrapper interface {
	Wrap(EntityService) EntityService
}

// BackupService exports and restores the whole vault.
type BackupService interface {
	// Export copies the vault metadata and every encrypted entry into an
	// archive. Requires Unlocked. Entries are not re-encrypted.
	Export(ctx context.Context) (*models.BackupArchive, error)
	// WriteArchive exports and CBOR-encodes the archive to w.
	WriteArchive(ctx context.Context, w io.Writer) error
	// ExportToFile writes a timestamped .osteobak file into dir and returns
	// its path.
	ExportToFile(ctx context.Context, dir string) (string, error)

	// Import verifies archive against credential and replaces the vault
	// content with it. Any failure returns ErrRestore and leaves the vault
	// unchanged. On success the vault is Unlocked with the archive key.
	Import(ctx context.Context, archive *models.BackupArchive, credential string) error
	// ImportFromReader decodes an archive from r and imports it.
	ImportFromReader(ctx context.Context, r io.Reader, credential string) error
	// ImportFromFile opens path and imports it.
	ImportFromFile(ctx context.Context, path, credential string) error
}

// ClientLockJob periodically asks the LockService to enforce the inactivity
// timeout.
type ClientLockJob interface {
	// Start launches the background goroutine. Any previously running job is
	// stopped first. A non-positive interval defaults to 10 seconds.
	Start(ctx context.Context, interval time.Duration)
	// Stop signals the goroutine to exit and waits for it.
	Stop()
}

// AppInfoService reports the build of the running binary.
type AppInfoService interface {
	BuildInfo(ctx context.Context) models.AppBuildInfo
}

// Clock supplies the current time. Tests replace it to simulate elapsed
// time.
type Clock interface {
	Now() time.Time
}
