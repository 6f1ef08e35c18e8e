package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/heroes/internal/cache"
	testutil "github.com/charlesng35/heroes/internal/database/testutil"
	"github.com/charlesng35/heroes/internal/models"
	"github.com/charlesng35/heroes/internal/monitoring"
)

func installModule(t *testing.T) *monitoring.Module {
	t.Helper()

	mod, err := monitoring.NewModule(monitoring.Options{})
	require.NoError(t, err)
	monitoring.SetModule(mod)
	return mod
}

func TestRunOncePurgesExpiredCacheEntries(t *testing.T) {
	mod := installModule(t)
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	now := time.Now()

	require.NoError(t, db.Create(&models.CacheEntry{
		Key:       "expired",
		Value:     []byte("a"),
		ExpiresAt: now.Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.CacheEntry{
		Key:       "fresh",
		Value:     []byte("b"),
		ExpiresAt: now.Add(time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.CacheEntry{
		Key:   "forever",
		Value: []byte("c"),
	}).Error)

	c := NewCleaner(cache.NewDatabaseStore(db),
		WithCron(cron.New(cron.WithLogger(cron.DiscardLogger))),
	)

	require.NoError(t, c.RunOnce(context.Background()))

	var keys []string
	require.NoError(t, db.Model(&models.CacheEntry{}).Order("expires_at").Pluck("key", &keys).Error)
	require.ElementsMatch(t, []string{"fresh", "forever"}, keys)

	summary := mod.Summary()
	require.Equal(t, uint64(1), summary.Cache.Purged)
	require.Len(t, summary.Maintenance.Jobs, 1)
	require.Equal(t, "cache_cleanup", summary.Maintenance.Jobs[0].Job)
	require.Equal(t, "success", summary.Maintenance.Jobs[0].LastStatus)
}

type failingPurger struct{ err error }

func (f failingPurger) PurgeExpired(context.Context) (int64, error) { return 0, f.err }

func TestRunOnceReportsPurgeFailure(t *testing.T) {
	mod := installModule(t)
	boom := errors.New("database unavailable")

	c := NewCleaner(failingPurger{err: boom})
	err := c.RunOnce(context.Background())
	require.ErrorIs(t, err, boom)

	summary := mod.Summary()
	require.Len(t, summary.Maintenance.Jobs, 1)
	require.Equal(t, "failure", summary.Maintenance.Jobs[0].LastStatus)
	require.Equal(t, boom.Error(), summary.Maintenance.Jobs[0].LastError)
}

func TestCleanerWithoutPurgerIsDisabled(t *testing.T) {
	c := NewCleaner(nil)

	require.False(t, c.Enabled())
	require.NoError(t, c.Start())
	require.NoError(t, c.RunOnce(context.Background()))
	<-c.Stop().Done()
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	c := NewCleaner(failingPurger{}, WithCacheSchedule("not a schedule"))
	require.Error(t, c.Start())
}

func TestStartSchedulesCacheCleanup(t *testing.T) {
	scheduler := cron.New(cron.WithLogger(cron.DiscardLogger))
	c := NewCleaner(failingPurger{}, WithCron(scheduler), WithCacheSchedule("@every 1h"))

	require.NoError(t, c.Start())
	t.Cleanup(func() { <-c.Stop().Done() })

	require.Len(t, scheduler.Entries(), 1)
}
