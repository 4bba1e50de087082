package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/osteo-vault/internal/adapter"
	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/crypto"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/models"
)

// ClientDeps are the collaborators NewClientServices builds on. Remote may
// be nil; KeyChain and Clock default to the production implementations.
type ClientDeps struct {
	Storages *store.ClientStorages
	Remote   adapter.RemoteAdapter
	KeyChain crypto.KeyChainService
	Clock    Clock
}

type ClientServices struct {
	Lock     LockService
	Router   Router
	Vault    VaultStore
	Entities EntityService
	Backup   BackupService
	LockJob  ClientLockJob
	AppInfo  AppInfoService

	storages *store.ClientStorages
	remote   adapter.RemoteAdapter
	logger   *logger.Logger
}

func NewClientServices(ctx context.Context, deps ClientDeps, cfg config.App, info models.AppBuildInfo, log *logger.Logger) (*ClientServices, error) {
	if deps.Storages == nil {
		deps.Storages = store.NewMemoryStorages()
	}
	if deps.KeyChain == nil {
		deps.KeyChain = crypto.NewKeyChainService()
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock
	}

	repo := deps.Storages.Vault

	lockSvc := NewLockService(repo, deps.KeyChain, LockOptions{
		InactivityTimeout: cfg.InactivityTimeout,
		Clock:             deps.Clock,
		DemoMode:          cfg.DemoMode,
		Degraded:          deps.Storages.Degraded,
		DegradedReason:    deps.Storages.DegradedReason,
	}, log.Component("lock"))

	if _, err := lockSvc.Configured(ctx); err != nil {
		log.Err(err).Str("func", "NewClientServices").Msg("failed to read vault state")
		return nil, err
	}

	router := NewRouter(cfg.DemoMode)
	vault := NewVaultStore(repo, deps.KeyChain, lockSvc, deps.Clock, log.Component("vault"))
	entities := NewEntityValidationService().Wrap(
		NewEntityService(router, vault, deps.Remote, log.Component("entities")),
	)

	return &ClientServices{
		Lock:     lockSvc,
		Router:   router,
		Vault:    vault,
		Entities: entities,
		Backup:   NewBackupService(repo, deps.KeyChain, lockSvc, deps.Clock, log.Component("backup")),
		LockJob:  NewClientLockJob(lockSvc, log.Component("lock_job")),
		AppInfo:  NewAppInfoService(info),
		storages: deps.Storages,
		remote:   deps.Remote,
		logger:   log,
	}, nil
}

// Close logs out, stops the lock job and releases the remote adapter and the
// vault medium.
func (s *ClientServices) Close() error {
	s.Lock.Logout()
	s.LockJob.Stop()

	var errs []error
	if s.remote != nil {
		if err := s.remote.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.storages.Close(); err != nil {
		errs = append(errs, err)
	}

	err := errors.Join(errs...)
	if err != nil {
		s.logger.Err(err).Str("func", "ClientServices.Close").Msg("failed to release resources")
	}
	return err
}
