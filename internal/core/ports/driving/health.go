package driving

import (
	"context"
	"time"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
)

// HealthService tracks backend availability for dispatch gating.
type HealthService interface {
	// Probe issues one health request and returns the resulting status.
	// Failures are non-fatal; they transition the status to offline.
	Probe(ctx context.Context) domain.BackendStatus

	// Status returns the current tri-state value without probing.
	Status() domain.BackendStatus

	// Report returns the last successful health report, if any.
	Report() *domain.HealthReport

	// Watch re-probes periodically until ctx is cancelled.
	Watch(ctx context.Context, interval time.Duration)
}
