package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/osteo-vault/internal/client"
	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/tui"
	"github.com/MKhiriev/osteo-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("osteo-vault-client", cfg.App.LogDir, cfg.App.LogLevel)
	log.Info().Str("build", info.String()).Msg("starting client")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	services, err := client.NewServices(ctx, cfg, info, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	ui := tui.New(services, info, cfg.Storage.BackupDir, log.Component("tui"))
	app := client.NewApp(services, ui, cfg.Workers, log)

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintf(os.Stderr, "client error: %v\n", err)
		os.Exit(1)
	}
}
