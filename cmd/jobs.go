package main

import (
	"context"
	"fmt"
	"time"

	"boardfarm/internal/jobs"
	"boardfarm/internal/service"
	"boardfarm/pkg/lock"
	"boardfarm/pkg/logger"
)

func (app *Application) initJobs() error {
	if app.statsService == nil {
		logger.WarnCtx(app.ctx, "Service layer not fully initialized yet, skipping background task registration")
		return nil
	}

	manager := jobs.NewManager(app.ctx)

	interval := time.Duration(app.config.Retention.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	// The distributed lock keeps multiple replicas from pruning concurrently.
	// Without Redis it downgrades to single-instance mode.
	pruneLock := lock.NewRedisDistributedLock(app.redisClient, "retention:pcstats-lock")
	manager.Register(newStatsRetentionJob(interval, app.config.Retention.PCStatsDays, app.statsService, pruneLock))

	app.jobsManager = manager
	return nil
}

// statsRetentionJob periodically prunes stats snapshots past the retention
// window
type statsRetentionJob struct {
	interval        time.Duration
	retentionDays   int
	statsService    *service.PCStatsService
	distributedLock lock.DistributedLock
}

func newStatsRetentionJob(interval time.Duration, retentionDays int, svc *service.PCStatsService, l lock.DistributedLock) jobs.Job {
	return &statsRetentionJob{
		interval:        interval,
		retentionDays:   retentionDays,
		statsService:    svc,
		distributedLock: l,
	}
}

func (j *statsRetentionJob) Name() string {
	return "pcstats-retention"
}

func (j *statsRetentionJob) Interval() time.Duration {
	return j.interval
}

func (j *statsRetentionJob) AlignToInterval() bool {
	return true
}

func (j *statsRetentionJob) Run(ctx context.Context) error {
	if j.statsService == nil {
		return fmt.Errorf("stats service not configured")
	}

	// Try to acquire distributed lock
	if j.distributedLock != nil {
		acquired, err := j.distributedLock.TryLock(ctx)
		if err != nil || !acquired {
			logger.DebugCtx(ctx, "another instance is running stats retention, skipping this cycle")
			return nil
		}
		defer j.distributedLock.Unlock(ctx)
	}

	logger.DebugCtx(ctx, "running stats retention job")
	_, err := j.statsService.Prune(ctx, j.retentionDays)
	return err
}
