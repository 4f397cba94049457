package health

import "context"

// CachePinger checks result cache backend availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// StoreChecker checks record store availability.
type StoreChecker interface {
	HealthCheck(ctx context.Context) error
}
