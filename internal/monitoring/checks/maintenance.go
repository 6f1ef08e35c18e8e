package checks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charlesng35/heroes/internal/monitoring"
)

const defaultMaintenanceMaxAge = 6 * time.Hour

// Maintenance reports on background jobs recorded through monitoring.RecordMaintenanceRun.
// A job whose latest run failed marks the probe down; a job not seen within maxAge (six
// hours when non-positive) degrades it.
func Maintenance(maxAge time.Duration) monitoring.Check {
	if maxAge <= 0 {
		maxAge = defaultMaintenanceMaxAge
	}

	return monitoring.NewCheck("maintenance", func(context.Context) monitoring.ProbeResult {
		start := time.Now()
		jobs := monitoring.Snapshot().Maintenance.Jobs

		status := monitoring.StatusUp
		var notes []string
		for _, job := range jobs {
			switch {
			case job.TotalRuns == 0:
				notes = append(notes, job.Job+": awaiting first run")
			case job.ConsecutiveFailures > 0:
				status = monitoring.WorstStatus(status, monitoring.StatusDown)
				notes = append(notes, fmt.Sprintf("%s: %d consecutive failure(s), last error %q",
					job.Job, job.ConsecutiveFailures, job.LastError))
			case start.Sub(job.LastRunAt) > maxAge:
				status = monitoring.WorstStatus(status, monitoring.StatusDegraded)
				notes = append(notes, job.Job+": last ran "+job.LastRunAt.UTC().Format(time.RFC3339))
			}
		}

		if len(jobs) == 0 {
			notes = append(notes, "no maintenance jobs recorded")
		}

		return monitoring.ProbeResult{
			Status:   status,
			Details:  strings.Join(notes, "; "),
			Duration: time.Since(start),
		}
	})
}
