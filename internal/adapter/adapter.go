package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/store"
)

// NewRemoteAdapter selects the remote implementation from config: a database
// URI wins over an HTTP address.
func NewRemoteAdapter(ctx context.Context, cfg config.Adapter, log *logger.Logger) (RemoteAdapter, error) {
	switch {
	case cfg.DatabaseURI != "":
		db, err := store.NewConnectPostgres(ctx, cfg.DatabaseURI, log)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
		}
		log.Info().Str("func", "NewRemoteAdapter").Msg("using postgres remote adapter")
		return NewPostgresRemoteAdapter(store.NewRemoteRecordRepository(db, log), store.NewPostgresErrorClassifier(), log), nil
	case cfg.HTTPAddress != "":
		a, err := NewHTTPRemoteAdapter(cfg, log)
		if err != nil {
			return nil, err
		}
		log.Info().Str("func", "NewRemoteAdapter").Str("address", cfg.HTTPAddress).Msg("using http remote adapter")
		return a, nil
	}
	return nil, ErrNoRemoteConfigured
}
