package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/osteo-vault/internal/cli"
	"github.com/MKhiriev/osteo-vault/internal/client"
	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	deps := cli.Deps{
		// cobra owns the command line; config comes from env and file only
		LoadConfig: func() (*config.StructuredConfig, error) {
			return config.Load("vaultctl", nil)
		},
		Open: func(ctx context.Context, cfg *config.StructuredConfig) (*service.ClientServices, error) {
			log := logger.NewClientLogger("vaultctl", cfg.App.LogDir, cfg.App.LogLevel)
			return client.NewServices(ctx, cfg, info, log)
		},
		Prompter:  cli.NewTermPrompter(os.Stdin, os.Stderr),
		BuildInfo: info,
	}

	if err := cli.NewRootCommand(deps).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
