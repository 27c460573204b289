package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crm-renewal-be/internal/config"
	"crm-renewal-be/internal/dto"
	"crm-renewal-be/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Sweeper runs one expiry pass.
type Sweeper interface {
	SweepExpired(ctx context.Context) (*dto.ExpirySweepResponse, error)
}

// ExpiryJob runs the expiry sweep on a cron schedule. Runs never overlap: a
// tick that arrives while the previous sweep is still going is skipped.
type ExpiryJob struct {
	cron    *cron.Cron
	sweeper Sweeper
	cfg     config.SchedulerConfig
	logger  logger.ILogger

	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

func NewExpiryJob(cfg config.SchedulerConfig, sweeper Sweeper, logger logger.ILogger) *ExpiryJob {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	ctx, cancel := context.WithCancel(context.Background())

	return &ExpiryJob{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		sweeper: sweeper,
		cfg:     cfg,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start registers the sweep and starts the scheduler. It is a no-op when
// the job is disabled.
func (j *ExpiryJob) Start() error {
	if !j.cfg.Enabled {
		j.logger.Info("EXPIRY", "Expiry sweep scheduler disabled by config", nil)
		return nil
	}

	if _, err := j.cron.AddFunc(j.cfg.ExpirySpec, j.Run); err != nil {
		return fmt.Errorf("invalid expiry sweep schedule %q: %w", j.cfg.ExpirySpec, err)
	}

	j.cron.Start()
	j.logger.Info("EXPIRY", "Expiry sweep scheduler started", map[string]interface{}{
		"schedule": j.cfg.ExpirySpec,
		"timeout":  j.cfg.SweepTimeout.String(),
	})
	return nil
}

// Run performs one sweep bounded by the configured timeout.
func (j *ExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(j.ctx, j.cfg.SweepTimeout)
	defer cancel()

	started := time.Now()
	res, err := j.sweeper.SweepExpired(ctx)
	if err != nil {
		j.logger.Error("EXPIRY", "Scheduled expiry sweep failed", map[string]interface{}{
			"error":    err.Error(),
			"duration": time.Since(started).String(),
		})
		return
	}

	j.logger.Info("EXPIRY", "Scheduled expiry sweep done", map[string]interface{}{
		"expired":  res.Expired,
		"duration": time.Since(started).String(),
	})
}

// Stop cancels a running sweep and waits for it to return. Safe to call
// more than once.
func (j *ExpiryJob) Stop() {
	j.stopOnce.Do(func() {
		j.cancel()
		<-j.cron.Stop().Done()
		j.logger.Info("EXPIRY", "Expiry sweep scheduler stopped", nil)
	})
}
