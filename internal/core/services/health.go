package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/opensquare/opensquare-cli/internal/core/domain"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driven"
	"github.com/opensquare/opensquare-cli/internal/core/ports/driving"
	"github.com/opensquare/opensquare-cli/internal/logger"
)

// Ensure HealthMonitor implements the interface.
var _ driving.HealthService = (*HealthMonitor)(nil)

// probeTimeout bounds a single health request.
const probeTimeout = 10 * time.Second

// HealthMonitor tracks backend availability. The status starts at
// checking and transitions only through probe results; no other
// component mutates it. A probe failure is non-fatal: the client stays
// usable in degraded mode with dispatch disabled.
type HealthMonitor struct {
	backend driven.BackendClient

	// limiter throttles probes so failure-triggered re-probes cannot
	// stampede the backend.
	limiter *rate.Limiter

	mu     sync.RWMutex
	status domain.BackendStatus
	report *domain.HealthReport
}

// NewHealthMonitor creates a monitor in the checking state.
func NewHealthMonitor(backend driven.BackendClient) *HealthMonitor {
	return &HealthMonitor{
		backend: backend,
		limiter: rate.NewLimiter(rate.Every(5*time.Second), 1),
		status:  domain.StatusChecking,
	}
}

// Probe issues one health request and returns the resulting status.
// A recognized success marker yields online; any failure (transport
// error, timeout, non-success marker) yields offline. Throttled probes
// return the current status unchanged.
func (m *HealthMonitor) Probe(ctx context.Context) domain.BackendStatus {
	if !m.limiter.Allow() {
		return m.Status()
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	report, err := m.backend.Health(ctx)
	if err != nil || !report.Healthy() {
		if err != nil {
			logger.Warn("health probe failed: %v", err)
		} else {
			logger.Warn("health probe returned status %q", report.Status)
		}
		m.set(domain.StatusOffline, nil)
		return domain.StatusOffline
	}

	m.set(domain.StatusOnline, report)
	return domain.StatusOnline
}

// Status returns the current tri-state value without probing.
func (m *HealthMonitor) Status() domain.BackendStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Report returns the last successful health report, or nil.
func (m *HealthMonitor) Report() *domain.HealthReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.report
}

// Watch re-probes on the given interval until ctx is cancelled.
// Periodic probing is optional; a single startup Probe is sufficient
// for gating.
func (m *HealthMonitor) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

func (m *HealthMonitor) set(status domain.BackendStatus, report *domain.HealthReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	if report != nil {
		m.report = report
	}
}
