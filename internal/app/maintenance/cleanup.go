package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/heroes/internal/monitoring"
	"github.com/charlesng35/heroes/pkg/logger"
)

const (
	cacheCleanupJob   = "cache_cleanup"
	defaultCacheSpec  = "@every 5m"
	defaultRunTimeout = time.Minute
)

// ExpiredEntryPurger removes cache entries whose expiry has passed.
type ExpiredEntryPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Cleaner coordinates background maintenance tasks such as purging expired cache rows.
type Cleaner struct {
	cache    ExpiredEntryPurger
	cron     *cron.Cron
	now      func() time.Time
	log      *zap.Logger
	schedule string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used to time job runs.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithCacheSchedule overrides the cron specification for cache cleanup.
func WithCacheSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.schedule = spec
		}
	}
}

// WithLogger overrides the logger used to report job failures.
func WithLogger(log *zap.Logger) Option {
	return func(cleaner *Cleaner) {
		if log != nil {
			cleaner.log = log
		}
	}
}

// NewCleaner constructs a Cleaner. A nil purger disables the cache cleanup job.
func NewCleaner(purger ExpiredEntryPurger, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		cache:    purger,
		now:      time.Now,
		schedule: defaultCacheSpec,
		log:      logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Enabled reports whether any job will be scheduled.
func (c *Cleaner) Enabled() bool {
	return c != nil && c.cache != nil
}

// Start registers cleanup jobs with the cron scheduler and launches it if at least one cleanup is enabled.
func (c *Cleaner) Start() error {
	if !c.Enabled() {
		return nil
	}

	if _, err := c.cron.AddFunc(c.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
		defer cancel()
		if _, err := c.purgeCache(ctx); err != nil {
			c.log.Warn("cache cleanup failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c == nil || c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes all configured cleanup routines sequentially. Primarily used in tests
// and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error
	if c.Enabled() {
		if _, err := c.purgeCache(ctx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (c *Cleaner) purgeCache(ctx context.Context) (int64, error) {
	start := c.now()
	removed, err := c.cache.PurgeExpired(ctx)
	duration := c.now().Sub(start)
	if err != nil {
		monitoring.RecordMaintenanceRun(cacheCleanupJob, "failure", err.Error(), duration)
		return 0, err
	}

	monitoring.RecordMaintenanceRun(cacheCleanupJob, "success", "", duration)
	monitoring.RecordCachePurge(removed)
	if removed > 0 {
		c.log.Info("purged expired cache entries", zap.Int64("removed", removed))
	}
	return removed, nil
}
