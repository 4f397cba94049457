package chi

import (
	"context"

	"github.com/kailas-cloud/bistrohunter/internal/domain/search/criteria"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/bistrohunter/internal/usecase/health"
)

// Searcher runs restaurant searches.
type Searcher interface {
	Search(ctx context.Context, c criteria.Criteria) (result.Outcome, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
