package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Check names reported in Report.Checks.
const (
	CheckStore = "record_store"
	CheckCache = "cache"
)

// Service coordinates health checks.
type Service struct {
	store StoreChecker
	cache CachePinger
}

// New creates a Service. cache is nil when caching is disabled.
func New(store StoreChecker, cache CachePinger) *Service {
	return &Service{store: store, cache: cache}
}

// Check runs health checks against all components. The record store is
// required: when it fails the service is unhealthy. A failing cache only
// degrades it, searches still go through uncached.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.store.HealthCheck(ctx); err != nil {
		checks[CheckStore] = CheckError
		status = Unhealthy
	} else {
		checks[CheckStore] = CheckOK
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks[CheckCache] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks[CheckCache] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
