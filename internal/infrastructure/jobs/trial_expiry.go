package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"loyaltyjo.backend/pkg/logger"
	"loyaltyjo.backend/pkg/metrics"
)

type trialSuspender interface {
	SuspendExpiredTrials(ctx context.Context, now time.Time) (int64, error)
}

// TrialExpiryJob suspends businesses whose free trial has ended
type TrialExpiryJob struct {
	repo     trialSuspender
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewTrialExpiryJob(repo trialSuspender, interval time.Duration) *TrialExpiryJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TrialExpiryJob{
		repo:     repo,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
		stop:     make(chan struct{}),
	}
}

// Start runs one sweep immediately, then one per interval until ctx is done or Stop is called
func (j *TrialExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting trial expiry job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.suspendExpiredTrials(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Trial expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Trial expiry job stopped")
			return
		case <-ticker.C:
			j.suspendExpiredTrials(ctx)
		}
	}
}

func (j *TrialExpiryJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *TrialExpiryJob) suspendExpiredTrials(ctx context.Context) {
	n, err := j.repo.SuspendExpiredTrials(ctx, j.now())
	if err != nil {
		logger.Error(ctx, "Failed to suspend expired trials", zap.Error(err))
		return
	}
	if n == 0 {
		return
	}

	metrics.RecordTrialSuspensions(n)
	logger.Info(ctx, "Suspended businesses with expired trials", zap.Int64("count", n))
}
