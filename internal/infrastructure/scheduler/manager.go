// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/seatshare-inc/seatshare/internal/shared/biztime"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager manages all scheduled jobs using gocron v2.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	// Track whether the scheduler has been started
	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
// It initializes gocron with the business timezone for cron expressions.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterGrantJobs registers grant maintenance jobs:
// - Expiry sweep: deactivate grants past their expiry date
// - Refund retry: attempt pending refund tasks that are due
//
// Both jobs are idempotent batches, so overlapping deployments or a sweep
// racing a manual run converge to the same state.
func (m *SchedulerManager) RegisterGrantJobs(
	expireGrantsJob BatchJob,
	retryRefundsJob BatchJob,
	sweepInterval time.Duration,
	refundInterval time.Duration,
) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.processExpiredGrants(ctx, expireGrantsJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("grant", "expire"),
		gocron.WithName("grant-expiry-sweep"),
	)
	if err != nil {
		return err
	}

	_, err = m.scheduler.NewJob(
		gocron.DurationJob(refundInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.processRefundTasks(ctx, retryRefundsJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("grant", "refund-retry"),
		gocron.WithName("refund-retry"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered grant jobs",
		"sweep_interval", sweepInterval,
		"refund_interval", refundInterval,
	)
	return nil
}

func (m *SchedulerManager) processExpiredGrants(ctx context.Context, expireGrantsJob BatchJob) {
	m.logger.Debugw("grant expiry sweep started")

	startTime := biztime.NowUTC()

	expiredCount, err := expireGrantsJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("grant expiry sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if expiredCount > 0 {
		m.logger.Infow("expired grants processed",
			"count", expiredCount,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no expired grants to process",
			"duration", time.Since(startTime),
		)
	}
}

func (m *SchedulerManager) processRefundTasks(ctx context.Context, retryRefundsJob BatchJob) {
	m.logger.Debugw("refund retry run started")

	startTime := biztime.NowUTC()

	retriedCount, err := retryRefundsJob.Execute(ctx)
	if err != nil {
		// Don't log error if context was cancelled (graceful shutdown)
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("refund retry run failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if retriedCount > 0 {
		m.logger.Infow("refund tasks attempted",
			"count", retriedCount,
			"duration", time.Since(startTime),
		)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler.
// It waits for all running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
