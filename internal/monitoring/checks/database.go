package checks

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/heroes/internal/monitoring"
)

// Database returns a probe that pings the pool behind db. Any failure marks it down since
// no hero operation can succeed without the database.
func Database(db *gorm.DB, timeout time.Duration) monitoring.Check {
	var target Pinger
	if db != nil {
		target = PingerFunc(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
	}

	return pingProbe{
		name:      "database",
		target:    target,
		timeout:   timeout,
		onFailure: monitoring.StatusDown,
		missing:   "database not configured",
	}.check()
}
