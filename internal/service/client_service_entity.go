package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/osteo-vault/internal/adapter"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/models"
)

type entityService struct {
	router Router
	vault  VaultStore
	remote adapter.RemoteAdapter

	logger *logger.Logger
}

// NewEntityService returns the routed [EntityService]. remote may be nil, in
// which case remote-bound calls fail with adapter.ErrNoRemoteConfigured.
func NewEntityService(router Router, vault VaultStore, remote adapter.RemoteAdapter, logger *logger.Logger) EntityService {
	return &entityService{
		router: router,
		vault:  vault,
		remote: remote,
		logger: logger,
	}
}

func (s *entityService) remoteFor(ctx context.Context, d models.RoutingDecision) (adapter.RemoteAdapter, error) {
	if s.remote == nil {
		logger.FromContext(ctx).Warn().
			Str("func", "entityService.remoteFor").
			Str("entity_type", d.EntityType.String()).
			Str("reason", string(d.Reason)).
			Msg("remote-bound call without a configured backend")
		return nil, adapter.ErrNoRemoteConfigured
	}
	return s.remote, nil
}

func (s *entityService) Get(ctx context.Context, entityType models.EntityType, id string) (models.Record, error) {
	d := s.router.Route(entityType)
	if d.Destination == models.LocalEncrypted {
		return s.vault.Get(ctx, entityType, id)
	}

	remote, err := s.remoteFor(ctx, d)
	if err != nil {
		return nil, err
	}
	record, err := remote.Get(ctx, entityType, id, d.Ephemeral)
	if errors.Is(err, adapter.ErrNotFound) {
		return nil, nil
	}
	return record, err
}

func (s *entityService) Put(ctx context.Context, entityType models.EntityType, id string, record models.Record) error {
	d := s.router.Route(entityType)
	if d.Destination == models.LocalEncrypted {
		return s.vault.Put(ctx, entityType, id, record)
	}

	remote, err := s.remoteFor(ctx, d)
	if err != nil {
		return err
	}
	return remote.Put(ctx, entityType, id, record, d.Ephemeral)
}

func (s *entityService) Delete(ctx context.Context, entityType models.EntityType, id string) error {
	d := s.router.Route(entityType)
	if d.Destination == models.LocalEncrypted {
		return s.vault.Delete(ctx, entityType, id)
	}

	remote, err := s.remoteFor(ctx, d)
	if err != nil {
		return err
	}
	return remote.Delete(ctx, entityType, id, d.Ephemeral)
}

func (s *entityService) List(ctx context.Context, entityType models.EntityType) ([]string, error) {
	d := s.router.Route(entityType)
	if d.Destination == models.LocalEncrypted {
		return s.vault.List(ctx, entityType)
	}

	remote, err := s.remoteFor(ctx, d)
	if err != nil {
		return nil, err
	}
	return remote.List(ctx, entityType, d.Ephemeral)
}
