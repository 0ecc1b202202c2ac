package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/feed"
	"github.com/scoreline/score-sync/internal/service"
)

// SyncWorker triggers the score sync job on a fixed interval, standing in
// for the platform scheduler when the service runs on its own.
//
// A tick that lands while a run (scheduled or HTTP-triggered) is still in
// flight is dropped rather than queued.
type SyncWorker struct {
	svc      *service.ScoreSyncService
	src      feed.Adapter
	interval time.Duration
	logger   *zap.Logger
	wg       sync.WaitGroup
}

func NewSyncWorker(svc *service.ScoreSyncService, src feed.Adapter, interval time.Duration, logger *zap.Logger) *SyncWorker {
	return &SyncWorker{svc: svc, src: src, interval: interval, logger: logger}
}

// Start launches Run in a goroutine. Cancelling ctx stops the worker; call
// Wait afterwards so an in-flight run can finish.
func (sw *SyncWorker) Start(ctx context.Context) {
	sw.wg.Add(1)
	go func() {
		defer sw.wg.Done()
		sw.Run(ctx)
	}()
}

// Wait blocks until Run has returned.
func (sw *SyncWorker) Wait() {
	sw.wg.Wait()
}

// Run ticks every interval and executes one sync pass per tick.
// Stops cleanly when ctx is cancelled.
func (sw *SyncWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	sw.logger.Info("sync worker started", zap.Duration("interval", sw.interval))

	for {
		select {
		case <-ctx.Done():
			sw.logger.Info("sync worker stopping")
			return
		case <-ticker.C:
			sw.poll(ctx)
		}
	}
}

func (sw *SyncWorker) poll(ctx context.Context) {
	report, err := sw.svc.Run(ctx, sw.src)
	if errors.Is(err, domain.ErrSyncInProgress) {
		sw.logger.Debug("previous score sync still running, skipping tick")
		return
	}
	if err != nil {
		sw.logger.Error("score sync poll error", zap.Error(err))
		return
	}
	if !report.Success {
		sw.logger.Warn("scheduled score sync failed",
			zap.String("failure", string(report.Failure)),
			zap.String("error", report.Error),
		)
	}
}
