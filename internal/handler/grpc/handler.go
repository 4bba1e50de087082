package grpc

import (
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/service"
	"github.com/MKhiriev/osteo-vault/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// VaultServiceName is the health service name reporting the vault lock state.
// The empty service name reports overall process health and always serves.
const VaultServiceName = "osteovault.Vault"

// Handler is the root gRPC transport handler.
//
// It exposes the standard gRPC health protocol. The vault service is SERVING
// while the vault is unlocked and NOT_SERVING while it is locked, so process
// supervisors can tell a running but locked client from a usable one.
type Handler struct {
	services *service.ClientServices
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] and subscribes it to lock transitions.
func NewHandler(services *service.ClientServices, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}

	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	if services != nil && services.Lock != nil {
		h.setVaultStatus(services.Lock.State().State)
		services.Lock.Subscribe(func(e models.LockEvent) {
			h.setVaultStatus(e.State)
		})
	} else {
		h.setVaultStatus(models.Locked)
	}

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the handler's services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Shutdown marks every service NOT_SERVING so watchers see the process
// going away before the listener closes.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setVaultStatus(state models.LockState) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if state == models.Unlocked {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus(VaultServiceName, status)
	h.logger.Debug().Str("service", VaultServiceName).Str("status", status.String()).Msg("health status updated")
}
