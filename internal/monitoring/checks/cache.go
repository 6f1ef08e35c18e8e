package checks

import (
	"time"

	"github.com/charlesng35/heroes/internal/monitoring"
)

// Cache returns a readiness probe for the configured cache backend. Failures only degrade
// readiness because the hero service falls back to the database on cache errors.
func Cache(driver string, client Pinger, timeout time.Duration) monitoring.Check {
	return pingProbe{
		name:      "cache",
		target:    client,
		timeout:   timeout,
		onFailure: monitoring.StatusDegraded,
		missing:   "cache unavailable",
		label:     driver,
	}.check()
}
