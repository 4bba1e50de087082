package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/osteo-vault/internal/logger"
)

type clientLockJob struct {
	lock LockService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientLockJob creates a clientLockJob that calls lock.CheckInactivity on
// a ticker. The job is idle until Start is called.
func NewClientLockJob(lock LockService, logger *logger.Logger) ClientLockJob {
	return &clientLockJob{lock: lock, logger: logger}
}

// Start implements ClientLockJob. The goroutine exits when ctx is cancelled
// or Stop is called.
func (j *clientLockJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	j.logger.Debug().Str("func", "clientLockJob.Start").Dur("interval", interval).Msg("lock job started")

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if j.lock.CheckInactivity() {
					j.logger.Info().Str("func", "clientLockJob.run").Msg("inactivity timeout reached")
				}
			}
		}
	}()
}

// Stop implements ClientLockJob. Safe to call when the job is not running.
func (j *clientLockJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
