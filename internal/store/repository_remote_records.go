package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/models"
)

type remoteRecordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRemoteRecordRepository returns the Postgres-backed
// [RemoteRecordRepository].
func NewRemoteRecordRepository(db *DB, logger *logger.Logger) RemoteRecordRepository {
	return &remoteRecordRepository{DB: db, logger: logger}
}

func (r *remoteRecordRepository) Get(ctx context.Context, entityType models.EntityType, id string, ephemeral bool) (*models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRemoteRecordQuery(r.builder, entityType, id, ephemeral)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		rec       models.RemoteRecord
		typ       string
		payload   []byte
		updatedAt time.Time
	)
	err = r.QueryRowContext(ctx, query, args...).Scan(&typ, &rec.ID, &payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "remoteRecordRepository.Get").
			Str("entity_type", entityType.String()).
			Str("pg_code", postgresError(err)).
			Msg("failed to read remote record")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	rec.EntityType = models.EntityType(typ)
	rec.Payload = payload
	rec.UpdatedAt = &updatedAt
	return &rec, nil
}

func (r *remoteRecordRepository) Put(ctx context.Context, record models.RemoteRecord, ephemeral bool) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertRemoteRecordQuery(r.builder, record, ephemeral)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "remoteRecordRepository.Put").
			Str("entity_type", record.EntityType.String()).
			Str("pg_code", postgresError(err)).
			Msg("failed to upsert remote record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *remoteRecordRepository) Delete(ctx context.Context, entityType models.EntityType, id string, ephemeral bool) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRemoteRecordQuery(r.builder, entityType, id, ephemeral)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "remoteRecordRepository.Delete").
			Str("entity_type", entityType.String()).
			Str("pg_code", postgresError(err)).
			Msg("failed to delete remote record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *remoteRecordRepository) List(ctx context.Context, entityType models.EntityType, ephemeral bool) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRemoteIDsQuery(r.builder, entityType, ephemeral)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "remoteRecordRepository.List").
			Str("entity_type", entityType.String()).
			Str("pg_code", postgresError(err)).
			Msg("failed to list remote records")
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
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return ids, nil
}

// PurgeEphemeral deletes every demo record and returns how many went away.
func (r *remoteRecordRepository) PurgeEphemeral(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildPurgeEphemeralQuery(r.builder)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "remoteRecordRepository.PurgeEphemeral").Msg("failed to purge demo records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *remoteRecordRepository) Close() error {
	return r.DB.Close()
}
