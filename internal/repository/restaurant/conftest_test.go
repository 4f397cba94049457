package restaurant

import (
	"context"
	"strings"

	domrest "github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/filter"
)

type mockLister struct {
	listFn func(ctx context.Context, q domrest.StoreQuery) ([]domrest.RawRecord, error)
	last   domrest.StoreQuery
}

func (m *mockLister) List(ctx context.Context, q domrest.StoreQuery) ([]domrest.RawRecord, error) {
	m.last = q
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	return nil, nil
}

// stubRenderer renders each group count, enough to check plumbing.
type stubRenderer struct{}

func (stubRenderer) Render(e filter.Expression) string {
	return "GROUPS(" + strings.Repeat("x", len(e.Groups())) + ")"
}
