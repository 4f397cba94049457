package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/bistrohunter/internal/domain"
	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/filter"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/mode"
)

func TestSearchAnchor_ZeroRecordsStopsAtMaxRadius(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockResolver{}, DefaultConfig())

	res, err := svc.searchAnchor(context.Background(), filter.Expression{}, geo.Place{Center: madrid}, 1, 10, mode.City)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.records) != 0 {
		t.Fatalf("want empty result, got %d", len(res.records))
	}
	if store.Calls() != 8 {
		t.Errorf("store calls = %d, want 8 (1..8 km)", store.Calls())
	}
	if res.radiusKm != 8 {
		t.Errorf("final radius = %f, want 8", res.radiusKm)
	}
	if res.steps != 8 {
		t.Errorf("steps = %d, want 8", res.steps)
	}
}

func TestSearchAnchor_RadiusGrowsEachStep(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockResolver{}, DefaultConfig())

	_, _ = svc.searchAnchor(context.Background(), filter.Expression{}, geo.Place{Center: madrid}, 1, 10, mode.City)

	prevSpan := 0.0
	for i, call := range store.calls {
		groups := call.query.Filter.Groups()
		lat := groups[len(groups)-2].Conditions()[0].Range()
		span := lat.LTE() - lat.GTE()
		if span <= prevSpan {
			t.Fatalf("step %d: lat span %f did not grow (prev %f)", i, span, prevSpan)
		}
		prevSpan = span
		if call.query.Limit != 10 {
			t.Errorf("step %d: limit = %d, want page size 10", i, call.query.Limit)
		}
	}
}

func TestSearchAnchor_StopsWhenTargetReached(t *testing.T) {
	store := &mockStore{findFn: func(call int, _ restaurant.Query) ([]restaurant.Record, error) {
		// Each wider box sees four more restaurants.
		return recs("r", 4*(call+1)), nil
	}}
	svc := newTestService(t, store, &mockResolver{}, DefaultConfig())

	res, err := svc.searchAnchor(context.Background(), filter.Expression{}, geo.Place{Center: madrid}, 1, 10, mode.City)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Calls() != 3 {
		t.Errorf("store calls = %d, want 3", store.Calls())
	}
	if len(res.records) != 10 {
		t.Fatalf("want 10 records (truncated to target), got %d", len(res.records))
	}
	if res.radiusKm != 3 {
		t.Errorf("final radius = %f, want 3", res.radiusKm)
	}
	seen := map[string]bool{}
	for _, r := range res.records {
		if seen[r.Key()] {
			t.Fatalf("duplicate %s", r.Key())
		}
		seen[r.Key()] = true
	}
	// Store order is kept: the first step's records come first.
	if res.records[0].Key() != "r0" {
		t.Errorf("first record = %s, want r0", res.records[0].Key())
	}
}

func TestSearchAnchor_StoreErrorCountsAsEmptyStep(t *testing.T) {
	store := &mockStore{findFn: func(call int, _ restaurant.Query) ([]restaurant.Record, error) {
		if call == 0 {
			return nil, domain.NewUpstreamError("airtable", 503, "unavailable")
		}
		return recs("r", 10), nil
	}}
	svc := newTestService(t, store, &mockResolver{}, DefaultConfig())

	res, err := svc.searchAnchor(context.Background(), filter.Expression{}, geo.Place{Center: madrid}, 1, 10, mode.City)
	if err != nil {
		t.Fatalf("store failures must not surface, got %v", err)
	}
	if store.Calls() != 2 || len(res.records) != 10 {
		t.Errorf("calls=%d records=%d", store.Calls(), len(res.records))
	}
}

func TestSearchAnchor_NonPositiveStepQueriesOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RadiusStepKm = 0
	store := &mockStore{}
	svc := newTestService(t, store, &mockResolver{}, cfg)

	if _, err := svc.searchAnchor(context.Background(), filter.Expression{}, geo.Place{Center: madrid}, 1, 10, mode.City); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Calls() != 1 {
		t.Errorf("store calls = %d, want 1", store.Calls())
	}
}

func TestSearchAnchor_InitialAboveMaxQueriesOnce(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockResolver{}, DefaultConfig())

	res, _ := svc.searchAnchor(context.Background(), filter.Expression{}, geo.Place{Center: madrid}, 20, 10, mode.City)
	if store.Calls() != 1 || res.radiusKm != 20 {
		t.Errorf("calls=%d radius=%f", store.Calls(), res.radiusKm)
	}
}

func TestSearchAnchor_FractionalStepReachesMax(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RadiusStepKm = 0.1
	cfg.MaxRadiusKm = 1
	store := &mockStore{}
	svc := newTestService(t, store, &mockResolver{}, cfg)

	_, _ = svc.searchAnchor(context.Background(), filter.Expression{}, geo.Place{Center: madrid}, 0.5, 10, mode.City)
	if store.Calls() != 6 {
		t.Errorf("store calls = %d, want 6 (0.5..1.0 km)", store.Calls())
	}
}

func TestSearchAnchor_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &mockStore{findFn: func(_ int, _ restaurant.Query) ([]restaurant.Record, error) {
		cancel()
		return nil, context.Canceled
	}}
	svc := newTestService(t, store, &mockResolver{}, DefaultConfig())

	_, err := svc.searchAnchor(ctx, filter.Expression{}, geo.Place{Center: madrid}, 1, 10, mode.City)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if store.Calls() != 1 {
		t.Errorf("store calls = %d, want 1", store.Calls())
	}
}

func TestSearchAnchor_ViewportUnion(t *testing.T) {
	vp := geo.BoundingBox{LatMin: 40.30, LatMax: 40.50, LonMin: -3.80, LonMax: -3.60}
	place := geo.Place{Center: madrid, Viewport: &vp}

	cfg := DefaultConfig()
	cfg.UseViewport = true
	store := &mockStore{findFn: func(_ int, _ restaurant.Query) ([]restaurant.Record, error) {
		return recs("r", 10), nil
	}}
	svc := newTestService(t, store, &mockResolver{}, cfg)
	_, _ = svc.searchAnchor(context.Background(), filter.Expression{}, place, 1, 10, mode.Zones)

	groups := store.calls[0].query.Filter.Groups()
	lat := groups[len(groups)-2].Conditions()[0].Range()
	if lat.GTE() != 40.30 || lat.LTE() != 40.50 {
		t.Errorf("lat range [%f, %f] does not cover viewport", lat.GTE(), lat.LTE())
	}

	// Disabled: the computed box alone.
	store2 := &mockStore{findFn: store.findFn}
	svc2 := newTestService(t, store2, &mockResolver{}, DefaultConfig())
	_, _ = svc2.searchAnchor(context.Background(), filter.Expression{}, place, 1, 10, mode.Zones)
	groups = store2.calls[0].query.Filter.Groups()
	lat = groups[len(groups)-2].Conditions()[0].Range()
	if lat.GTE() <= 40.30 {
		t.Errorf("viewport applied while disabled: %f", lat.GTE())
	}
}

func TestSearchAnchor_FormulaIsLastSent(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockResolver{}, DefaultConfig())

	res, _ := svc.searchAnchor(context.Background(), filter.Expression{}, geo.Place{Center: madrid}, 1, 10, mode.City)
	if res.formula != store.calls[len(store.calls)-1].formula {
		t.Errorf("formula = %q, want last sent %q", res.formula, store.calls[len(store.calls)-1].formula)
	}
}
