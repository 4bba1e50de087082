package store

import "errors"

// Sentinel errors returned by repositories. Match with [errors.Is].
var (
	// ErrPersistenceUnavailable is returned when the durable vault medium
	// cannot be opened. Storages then fall back to memory.
	ErrPersistenceUnavailable = errors.New("persistent storage unavailable")

	// ErrVaultInUse is returned when another process holds the vault file.
	ErrVaultInUse = errors.New("vault is in use by another process")

	// ErrEntryNotFound is returned when no entry exists for (entity type, id).
	ErrEntryNotFound = errors.New("vault entry not found")

	// ErrMetaNotFound is returned when the vault has never been configured.
	ErrMetaNotFound = errors.New("vault metadata not found")

	// ErrRecordNotFound is returned by the remote record repository.
	ErrRecordNotFound = errors.New("remote record not found")
)

// Archive codec errors.
var (
	ErrArchiveMalformed = errors.New("backup archive is malformed")
	ErrArchiveVersion   = errors.New("unsupported backup archive version")
	ErrArchiveChecksum  = errors.New("backup archive checksum mismatch")
	ErrArchiveTooLarge  = errors.New("backup archive too large")
)

// Low-level database errors wrapped by repository methods.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
)
