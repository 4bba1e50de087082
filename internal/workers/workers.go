package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/osteo-vault/internal/config"
	"github.com/MKhiriev/osteo-vault/internal/logger"
	"github.com/MKhiriev/osteo-vault/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers of the client process.
func NewWorkers(services *service.ClientServices, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		newLockWorker(services.LockJob, cfg.LockCheckInterval, logger.Component("lock-worker")),
	}}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// lockWorker drives the inactivity lock job.
type lockWorker struct {
	job      service.ClientLockJob
	interval time.Duration
	logger   *logger.Logger
}

func newLockWorker(job service.ClientLockJob, interval time.Duration, logger *logger.Logger) *lockWorker {
	return &lockWorker{job: job, interval: interval, logger: logger}
}

func (l *lockWorker) Run(ctx context.Context) {
	l.logger.Info().Dur("interval", l.interval).Msg("starting inactivity lock worker")
	l.job.Start(ctx, l.interval)
}

func (l *lockWorker) Stop() {
	l.job.Stop()
}
