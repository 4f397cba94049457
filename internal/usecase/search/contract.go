package search

import (
	"context"

	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/filter"
)

// RecordStore queries restaurants by filter expression.
type RecordStore interface {
	Find(ctx context.Context, q restaurant.Query) ([]restaurant.Record, error)
	// Formula renders the expression as sent to the store.
	Formula(e filter.Expression) string
}

// PlaceResolver geocodes a zone or city. It reports failure with false,
// never with an error.
type PlaceResolver interface {
	Resolve(ctx context.Context, name, city string) (geo.Place, bool)
}
