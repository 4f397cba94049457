package chi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/criteria"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/mode"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/bistrohunter/internal/usecase/health"
)

// --- Mocks ---

type mockSearcher struct {
	searchFn func(ctx context.Context, c criteria.Criteria) (result.Outcome, error)
	got      []criteria.Criteria
}

func (m *mockSearcher) Search(ctx context.Context, c criteria.Criteria) (result.Outcome, error) {
	m.got = append(m.got, c)
	if m.searchFn == nil {
		return result.Outcome{Mode: c.Mode()}, nil
	}
	return m.searchFn(ctx, c)
}

func (m *mockSearcher) last(t *testing.T) criteria.Criteria {
	t.Helper()
	if len(m.got) == 0 {
		t.Fatal("searcher was not called")
	}
	return m.got[len(m.got)-1]
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

// --- Helpers ---

var sol = geo.Point{Lat: 40.4169, Lon: -3.7035}

func newTestRouter(search Searcher, health HealthChecker) http.Handler {
	if health == nil {
		health = &mockHealth{report: healthuc.Report{Status: healthuc.Healthy, Checks: map[string]healthuc.CheckResult{}}}
	}
	r := chirouter.NewRouter()
	NewServer(search, health, zap.NewNop()).Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader = http.NoBody
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func madridOutcome() result.Outcome {
	near := geo.Point{Lat: 40.4180, Lon: -3.7035}
	return result.Outcome{
		Items: []result.Item{
			result.NewItem(restaurant.Record{
				ID: "rec1", CID: "c1", Title: "Casa Lucio", Description: "Huevos rotos",
				URL: "https://example.com/c1", PriceRange: []any{"€€"}, Score: 9.1,
				Location: &near, Categories: []string{"Española"},
			}, 0.12, true),
			result.NewItem(restaurant.Record{
				ID: "rec2", Title: "Sin coordenadas", PriceRange: "€", Score: "8",
			}, 0, false),
		},
		Formula: "AND(FIND(LOWER('italiana'), LOWER({comida_[TESTING]})) > 0)",
		Anchors: []result.Anchor{{Name: "Madrid", Point: sol, RadiusKm: 1, Found: 2}},
		Mode:    mode.City,
	}
}
