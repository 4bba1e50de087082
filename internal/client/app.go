package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/osteo-vault/internal/adapter"
	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/internal/store"
	"github.com/MKhiriev/osteo-vault/internal/tui"
	"github.com/MKhiriev/osteo-vault/internal/workers"
	"github.com/MKhiriev/osteo-vault/models"
)

type App struct {
	services *service.ClientServices
	workers  *workers.Workers
	tui      *tui.TUI

	logger *logger.Logger
}

// NewServices opens the local vault (falling back to memory), selects the
// remote adapter and builds the client services. A missing or unreachable
// remote is not fatal: remote-routed calls then fail individually.
func NewServices(ctx context.Context, cfg *config.StructuredConfig, info models.AppBuildInfo, log *logger.Logger) (*service.ClientServices, error) {
	storages := store.NewClientStorages(ctx, cfg.Storage, log.Component("store"))

	remote, err := adapter.NewRemoteAdapter(ctx, cfg.Adapter, log.Component("adapter"))
	switch {
	case errors.Is(err, adapter.ErrNoRemoteConfigured):
		log.Info().Str("func", "client.NewServices").Msg("no remote backend configured")
		remote = nil
	case err != nil:
		log.Warn().Err(err).Str("func", "client.NewServices").Msg("remote backend unavailable, continuing offline")
		remote = nil
	}

	services, err := service.NewClientServices(ctx, service.ClientDeps{
		Storages: storages,
		Remote:   remote,
	}, cfg.App, info, log)
	if err != nil {
		if remote != nil {
			remote.Close()
		}
		storages.Close()
		return nil, fmt.Errorf("create client services: %w", err)
	}
	return services, nil
}

func NewApp(services *service.ClientServices, ui *tui.TUI, cfg config.Workers, logger *logger.Logger) *App {
	return &App{
		services: services,
		workers:  workers.NewWorkers(services, cfg, logger),
		tui:      ui,
		logger:   logger,
	}
}

// Run starts the background workers and blocks in the terminal UI. Quitting
// the UI is a normal exit. The vault is locked and released on return.
func (a *App) Run(ctx context.Context) error {
	a.workers.Run(ctx)
	defer a.workers.Stop()

	err := a.tui.Run(ctx)
	closeErr := a.services.Close()

	if errors.Is(err, tui.ErrUserQuit) {
		err = nil
	}
	return errors.Join(err, closeErr)
}
