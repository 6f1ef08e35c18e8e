package checks

import (
	"context"
	"time"

	"github.com/charlesng35/heroes/internal/monitoring"
)

const defaultProbeTimeout = 2 * time.Second

// Pinger is implemented by dependencies that can be probed with a round trip.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a plain function to Pinger.
type PingerFunc func(ctx context.Context) error

// Ping calls f(ctx).
func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// pingProbe describes how a single ping-based check reports its outcome.
type pingProbe struct {
	name    string
	target  Pinger
	timeout time.Duration
	// onFailure caps the status reported when the ping fails or the target is missing.
	onFailure monitoring.ProbeStatus
	missing   string
	label     string
}

func (p pingProbe) check() monitoring.Check {
	timeout := p.timeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	return monitoring.NewCheck(p.name, func(ctx context.Context) monitoring.ProbeResult {
		start := time.Now()
		if p.target == nil {
			return monitoring.ProbeResult{
				Status:   p.onFailure,
				Details:  p.missing,
				Duration: time.Since(start),
			}
		}

		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		err := p.target.Ping(probeCtx)
		result := monitoring.ResultFromError(p.name, err, time.Since(start))
		if err != nil && p.onFailure == monitoring.StatusDegraded {
			result.Status = monitoring.StatusDegraded
		}
		result.Details = p.describe(result.Details)
		return result
	})
}

func (p pingProbe) describe(details string) string {
	switch {
	case p.label == "":
		return details
	case details == "":
		return p.label
	default:
		return p.label + ": " + details
	}
}
