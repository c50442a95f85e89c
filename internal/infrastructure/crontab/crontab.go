package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"love-unlock/internal/domain/ratelimit"
	"love-unlock/internal/domain/unlock"
	"love-unlock/internal/infrastructure/metrics"
	"love-unlock/internal/utils/platformerrors"
)

const (
	PurgeSchedule     = "*/15 * * * *"
	ReconcileSchedule = "*/10 * * * *"
	CronJobTimeout    = 5 * time.Minute
)

// Locker serialises a job across replicas. A nil Locker runs jobs unguarded.
type Locker interface {
	WithLock(ctx context.Context, name string, ttl time.Duration, fn func(ctx context.Context) error) error
}

type Crontab struct {
	ctab      *crontab.Crontab
	limiter   ratelimit.Limiter
	unlocks   unlock.Service
	retention time.Duration
	locker    Locker
	// reconcile is off when unlocks commit atomically, there is nothing to repair then.
	reconcile bool
	log       zerolog.Logger
}

func NewCrontab(limiter ratelimit.Limiter, unlocks unlock.Service, retention time.Duration, locker Locker, log zerolog.Logger) *Crontab {
	return &Crontab{
		ctab:      crontab.New(),
		limiter:   limiter,
		unlocks:   unlocks,
		retention: retention,
		locker:    locker,
		reconcile: true,
		log:       log.With().Str("component", "crontab").Logger(),
	}
}

// SkipReconcile leaves only the rate limit purge on the schedule.
func (c *Crontab) SkipReconcile() *Crontab {
	c.reconcile = false
	return c
}

// Run schedules the maintenance jobs and blocks until ctx is done.
func (c *Crontab) Run(ctx context.Context) error {
	if err := c.ctab.AddJob(PurgeSchedule, func() { c.runJob("ratelimit-purge", c.purge) }); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add purge job")
	}
	if c.reconcile {
		// execute once on start
		c.reconcileLedger(ctx)

		if err := c.ctab.AddJob(ReconcileSchedule, func() { c.runJob("ledger-reconcile", c.reconcileLedger) }); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add reconcile job")
		}
	}
	c.log.Info().Str("purge", PurgeSchedule).Bool("reconcile", c.reconcile).Msg("maintenance jobs scheduled")

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) runJob(name string, job func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
	defer cancel()

	if c.locker == nil {
		job(ctx)
		return
	}
	err := c.locker.WithLock(ctx, "love-unlock:cron:"+name, CronJobTimeout, func(ctx context.Context) error {
		job(ctx)
		return nil
	})
	if err != nil {
		c.log.Debug().Err(err).Str("job", name).Msg("job skipped, lock held elsewhere")
		metrics.CronRunsTotal.WithLabelValues(name, "skipped").Inc()
	}
}

func (c *Crontab) purge(ctx context.Context) {
	removed, err := c.limiter.Purge(ctx, c.retention)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to purge rate limit counters")
		metrics.CronRunsTotal.WithLabelValues("ratelimit-purge", "error").Inc()
		return
	}
	metrics.CronRunsTotal.WithLabelValues("ratelimit-purge", "ok").Inc()
	c.log.Debug().Int64("removed", removed).Msg("rate limit purge finished")
}

func (c *Crontab) reconcileLedger(ctx context.Context) {
	report, err := c.unlocks.Reconcile(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to reconcile ledger")
		metrics.CronRunsTotal.WithLabelValues("ledger-reconcile", "error").Inc()
		return
	}
	metrics.CronRunsTotal.WithLabelValues("ledger-reconcile", "ok").Inc()
	if len(report.Promoted) > 0 {
		c.log.Warn().Strs("codes", report.Promoted).Msg("promoted pages missing their unlock")
	}
}
