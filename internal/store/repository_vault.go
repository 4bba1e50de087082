package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/models"
)

type vaultRepository struct {
	*DB
	logger *logger.Logger
}

// NewVaultRepository returns the SQL-backed [VaultRepository].
func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	return &vaultRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.VaultEntry, error) {
	var (
		e          models.VaultEntry
		entityType string
	)
	if err := row.Scan(&entityType, &e.ID, &e.Ciphertext, &e.Nonce, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return models.VaultEntry{}, err
	}
	e.EntityType = models.EntityType(entityType)
	return e, nil
}

func (r *vaultRepository) GetMeta(ctx context.Context) (*models.VaultMeta, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectMetaQuery(r.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var m models.VaultMeta
	err = r.QueryRowContext(ctx, query, args...).Scan(
		&m.Salt, &m.FormatVersion, &m.CanaryCiphertext, &m.CanaryNonce,
		&m.KDF.Time, &m.KDF.Memory, &m.KDF.Threads, &m.KDF.KeyLen, &m.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMetaNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.GetMeta").Msg("failed to read vault meta")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return &m, nil
}

func (r *vaultRepository) SaveMeta(ctx context.Context, meta models.VaultMeta) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertMetaQuery(r.builder, meta)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "vaultRepository.SaveMeta").Msg("failed to save vault meta")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *vaultRepository) PutEntry(ctx context.Context, entry models.VaultEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertEntryQuery(r.builder, entry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "vaultRepository.PutEntry").
			Str("entity_type", entry.EntityType.String()).
			Str("id", entry.ID).
			Msg("failed to upsert vault entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *vaultRepository) GetEntry(ctx context.Context, entityType models.EntityType, id string) (*models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectEntryQuery(r.builder, entityType, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	e, err := scanEntry(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.GetEntry").
			Str("entity_type", entityType.String()).
			Str("id", id).
			Msg("failed to read vault entry")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return &e, nil
}

func (r *vaultRepository) DeleteEntry(ctx context.Context, entityType models.EntityType, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteEntryQuery(r.builder, entityType, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "vaultRepository.DeleteEntry").
			Str("entity_type", entityType.String()).
			Str("id", id).
			Msg("failed to delete vault entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *vaultRepository) ListIDs(ctx context.Context, entityType models.EntityType) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListIDsQuery(r.builder, entityType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.ListIDs").Str("entity_type", entityType.String()).Msg("failed to list ids")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "vaultRepository.ListIDs").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return ids, nil
}

func (r *vaultRepository) AllEntries(ctx context.Context) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAllEntriesQuery(r.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.AllEntries").Msg("failed to read vault entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.VaultEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "vaultRepository.AllEntries").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entries, nil
}

// ReplaceAll runs in a single transaction: wipe, write meta, write entries.
func (r *vaultRepository) ReplaceAll(ctx context.Context, meta models.VaultMeta, entries []models.VaultEntry) error {
	log := logger.FromContext(ctx)

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.ReplaceAll").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	exec := func(query string, args []any, buildErr error) error {
		if buildErr != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	}

	if err := exec(buildDeleteAllQuery(r.builder, vaultEntriesTable)); err != nil {
		return rollback(tx, err)
	}
	if err := exec(buildDeleteAllQuery(r.builder, vaultMetaTable)); err != nil {
		return rollback(tx, err)
	}
	if err := exec(buildUpsertMetaQuery(r.builder, meta)); err != nil {
		return rollback(tx, err)
	}
	for _, e := range entries {
		if err := exec(buildUpsertEntryQuery(r.builder, e)); err != nil {
			log.Err(err).
				Str("func", "vaultRepository.ReplaceAll").
				Str("entity_type", e.EntityType.String()).
				Str("id", e.ID).
				Msg("failed to write restored entry")
			return rollback(tx, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "vaultRepository.ReplaceAll").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().Str("func", "vaultRepository.ReplaceAll").Int("entries", len(entries)).Msg("vault content replaced")
	return nil
}

func (r *vaultRepository) Close() error {
	return r.DB.Close()
}
