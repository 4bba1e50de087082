package http

import (
	"time"

	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/service"
)

type Handler struct {
	services *service.ClientServices

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.ClientServices, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
