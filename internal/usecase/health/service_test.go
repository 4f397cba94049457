package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockStoreChecker struct {
	err error
}

func (m *mockStoreChecker) HealthCheck(_ context.Context) error { return m.err }

type mockCachePinger struct {
	err error
}

func (m *mockCachePinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck(t *testing.T) {
	down := errors.New("down")

	tests := []struct {
		name       string
		store      error
		cache      CachePinger
		wantStatus Status
		wantStore  CheckResult
		wantCache  CheckResult // empty: check absent
	}{
		{"all healthy", nil, &mockCachePinger{}, Healthy, CheckOK, CheckOK},
		{"cache down", nil, &mockCachePinger{err: down}, Degraded, CheckOK, CheckError},
		{"store down", down, &mockCachePinger{}, Unhealthy, CheckError, CheckOK},
		{"both down", down, &mockCachePinger{err: down}, Unhealthy, CheckError, CheckError},
		{"no cache", nil, nil, Healthy, CheckOK, ""},
		{"no cache store down", down, nil, Unhealthy, CheckError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&mockStoreChecker{err: tt.store}, tt.cache)
			r := svc.Check(context.Background())

			if r.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, r.Status)
			}
			if r.Checks[CheckStore] != tt.wantStore {
				t.Errorf("expected record_store %q, got %q", tt.wantStore, r.Checks[CheckStore])
			}
			got, ok := r.Checks[CheckCache]
			if tt.wantCache == "" {
				if ok {
					t.Error("cache check should be absent when caching is disabled")
				}
				return
			}
			if got != tt.wantCache {
				t.Errorf("expected cache %q, got %q", tt.wantCache, got)
			}
		})
	}
}
