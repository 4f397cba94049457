package restaurant

import (
	"context"

	"github.com/kailas-cloud/bistrohunter/internal/domain/search/filter"
)

// Sort directions understood by the record store.
const (
	SortDesc = "desc"
	SortAsc  = "asc"
)

// StoreQuery is a single record-store request. Field order is part of the
// cache key encoding.
type StoreQuery struct {
	Formula       string `json:"formula"`
	SortField     string `json:"sort_field,omitempty"`
	SortDirection string `json:"sort_direction,omitempty"`
	MaxRecords    int    `json:"max_records"`
	View          string `json:"view,omitempty"`
}

// RawRecord is a store row with its opaque field map.
type RawRecord struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

// Lister runs store queries.
type Lister interface {
	List(ctx context.Context, q StoreQuery) ([]RawRecord, error)
}

// Query asks for at most Limit records matching Filter, best score first.
type Query struct {
	Filter filter.Expression
	Limit  int
}
