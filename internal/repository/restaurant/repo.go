package restaurant

import (
	"context"
	"fmt"

	domrest "github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/filter"
)

// renderer turns a filter expression into the store's formula language.
type renderer interface {
	Render(e filter.Expression) string
}

// Options configures how queries are issued.
type Options struct {
	View   string
	Fields Fields
}

// Repo implements usecase/search.RecordStore over a record-store lister.
type Repo struct {
	lister   domrest.Lister
	renderer renderer
	opts     Options
}

// New creates a restaurant repository. Records are always requested best
// score first.
func New(l domrest.Lister, r renderer, opts Options) *Repo {
	return &Repo{lister: l, renderer: r, opts: opts}
}

// Formula renders the expression exactly as Find sends it.
func (r *Repo) Formula(e filter.Expression) string {
	return r.renderer.Render(e)
}

// Find queries the store and maps rows to records in store order.
func (r *Repo) Find(ctx context.Context, q domrest.Query) ([]domrest.Record, error) {
	sq := domrest.StoreQuery{
		Formula:       r.Formula(q.Filter),
		SortField:     r.opts.Fields.Score,
		SortDirection: domrest.SortDesc,
		MaxRecords:    q.Limit,
		View:          r.opts.View,
	}

	raws, err := r.lister.List(ctx, sq)
	if err != nil {
		return nil, fmt.Errorf("find restaurants: %w", err)
	}

	out := make([]domrest.Record, 0, len(raws))
	for _, raw := range raws {
		out = append(out, toRecord(raw, r.opts.Fields))
	}
	return out, nil
}
