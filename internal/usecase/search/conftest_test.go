package search

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/criteria"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/filter"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/result"
	"github.com/kailas-cloud/bistrohunter/internal/transport/airtable"
)

var madrid = geo.Point{Lat: 40.4168, Lon: -3.7038}

// --- Mocks ---

type findCall struct {
	query   restaurant.Query
	formula string
}

type mockStore struct {
	mu     sync.Mutex
	findFn func(call int, q restaurant.Query) ([]restaurant.Record, error)
	calls  []findCall
}

func (m *mockStore) Find(_ context.Context, q restaurant.Query) ([]restaurant.Record, error) {
	m.mu.Lock()
	n := len(m.calls)
	m.calls = append(m.calls, findCall{query: q, formula: airtable.Render(q.Filter)})
	m.mu.Unlock()
	if m.findFn == nil {
		return nil, nil
	}
	return m.findFn(n, q)
}

func (m *mockStore) Formula(e filter.Expression) string { return airtable.Render(e) }

func (m *mockStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockResolver struct {
	places map[string]geo.Place
	asked  []string
}

func (m *mockResolver) Resolve(_ context.Context, name, _ string) (geo.Place, bool) {
	m.asked = append(m.asked, name)
	p, ok := m.places[name]
	return p, ok
}

// --- Helpers ---

func newTestService(t *testing.T, store RecordStore, places PlaceResolver, cfg Config) *Service {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return New(store, places, filter.DefaultSchema(), cfg, zap.NewNop())
}

func mustCriteria(t *testing.T, p criteria.Params) criteria.Criteria {
	t.Helper()
	if p.City == "" {
		p.City = "Madrid"
	}
	c, err := criteria.New(p)
	if err != nil {
		t.Fatalf("criteria: %v", err)
	}
	return c
}

// north returns the point km kilometers due north of p.
func north(p geo.Point, km float64) geo.Point {
	return geo.Point{Lat: p.Lat + km/(geo.EarthRadiusKm*math.Pi/180), Lon: p.Lon}
}

func rec(cid string, loc *geo.Point, score any) restaurant.Record {
	return restaurant.Record{ID: "rec-" + cid, CID: cid, Title: "Restaurante " + cid, Location: loc, Score: score}
}

func recs(prefix string, n int) []restaurant.Record {
	out := make([]restaurant.Record, n)
	for i := range out {
		out[i] = rec(fmt.Sprintf("%s%d", prefix, i), nil, float64(n-i))
	}
	return out
}

func outcomeKeys(o result.Outcome) []string {
	out := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		out = append(out, it.Record().Key())
	}
	return out
}
