package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/osteo-vault/internal/client"
	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/handler"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/server"
	"github.com/MKhiriev/osteo-vault/internal/workers"
	"github.com/MKhiriev/osteo-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("osteo-vault-server", config.DefaultLogLevel).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("osteo-vault-server", cfg.App.LogLevel)
	log.Debug().Any("server", cfg.Server).Any("app", cfg.App).Msg("received configs")

	ctx := context.Background()

	services, err := client.NewServices(ctx, cfg, info, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	ws := workers.NewWorkers(services, cfg.Workers, log)
	ws.Run(ctx)

	srv.RunServer()

	ws.Stop()
	if err := services.Close(); err != nil {
		log.Err(err).Msg("error closing services")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
