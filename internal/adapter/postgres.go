package adapter

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/models"
)

type postgresRemoteAdapter struct {
	records    store.RemoteRecordRepository
	classifier store.ErrorClassificator
	logger     *logger.Logger
}

// NewPostgresRemoteAdapter implements [RemoteAdapter] on the remote_records
// table reached directly over PostgreSQL.
func NewPostgresRemoteAdapter(records store.RemoteRecordRepository, classifier store.ErrorClassificator, logger *logger.Logger) RemoteAdapter {
	return &postgresRemoteAdapter{records: records, classifier: classifier, logger: logger}
}

func (p *postgresRemoteAdapter) Get(ctx context.Context, entityType models.EntityType, id string, ephemeral bool) (models.Record, error) {
	rec, err := p.records.Get(ctx, entityType, id, ephemeral)
	if err != nil {
		return nil, mapStoreError(p.classifier, err)
	}
	return models.Record(rec.Payload), nil
}

func (p *postgresRemoteAdapter) Put(ctx context.Context, entityType models.EntityType, id string, record models.Record, ephemeral bool) error {
	err := p.records.Put(ctx, models.RemoteRecord{EntityType: entityType, ID: id, Payload: json.RawMessage(record)}, ephemeral)
	return mapStoreError(p.classifier, err)
}

func (p *postgresRemoteAdapter) Delete(ctx context.Context, entityType models.EntityType, id string, ephemeral bool) error {
	return mapStoreError(p.classifier, p.records.Delete(ctx, entityType, id, ephemeral))
}

func (p *postgresRemoteAdapter) List(ctx context.Context, entityType models.EntityType, ephemeral bool) ([]string, error) {
	ids, err := p.records.List(ctx, entityType, ephemeral)
	if err != nil {
		return nil, mapStoreError(p.classifier, err)
	}
	return ids, nil
}

// Close drops demo records written during this session, then closes the
// connection pool.
func (p *postgresRemoteAdapter) Close() error {
	n, err := p.records.PurgeEphemeral(context.Background())
	if err != nil {
		p.logger.Err(err).Str("func", "postgresRemoteAdapter.Close").Msg("failed to purge demo records")
	} else if n > 0 {
		p.logger.Info().Str("func", "postgresRemoteAdapter.Close").Int64("purged", n).Msg("demo records purged")
	}
	return p.records.Close()
}
