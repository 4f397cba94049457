package recordcache

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bistrohunter/internal/db"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
)

type mockLister struct {
	mu      sync.Mutex
	records []restaurant.RawRecord
	err     error
	calls   int
}

func (m *mockLister) List(_ context.Context, _ restaurant.StoreQuery) ([]restaurant.RawRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.records, m.err
}

func (m *mockLister) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedLister(t *testing.T, inner *mockLister) (*CachedLister, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cl := New(inner, ms, time.Minute, nil, zap.NewNop())
	return cl, ms
}

func sampleRecords() []restaurant.RawRecord {
	return []restaurant.RawRecord{
		{ID: "rec1", Fields: map[string]any{"cid": "c1", "title": "Trattoria", "NBH2": 9.1}},
		{ID: "rec2", Fields: map[string]any{"cid": "c2", "title": "Sushi Bar", "price_range": []any{"€€"}}},
	}
}

func sampleQuery() restaurant.StoreQuery {
	return restaurant.StoreQuery{
		Formula:       "AND(FIND(LOWER('italiana'), LOWER({comida_[TESTING]})) > 0)",
		SortField:     "NBH2",
		SortDirection: restaurant.SortDesc,
		MaxRecords:    10,
	}
}
