package recordcache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bistrohunter/internal/db"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
)

// KeyPrefix namespaces cache entries in shared backends.
const KeyPrefix = "bistrohunter:records:"

// store is the consumer interface for the record cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedLister memoizes record-store queries in a key-value store.
type CachedLister struct {
	inner      restaurant.Lister
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner restaurant.Lister,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedLister {
	return &CachedLister{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// List returns cached records for q or queries the inner lister and stores
// the response. Cache failures degrade to a miss.
func (c *CachedLister) List(ctx context.Context, q restaurant.StoreQuery) ([]restaurant.RawRecord, error) {
	key, err := cacheKey(q)
	if err != nil {
		c.logger.Warn("Failed to build record cache key", zap.Error(err))
		return c.inner.List(ctx, q)
	}

	if recs, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return recs, nil
	}

	c.incCache("miss")

	recs, err := c.inner.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	c.putToCache(ctx, key, recs)
	return recs, nil
}

func (c *CachedLister) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the JSON encoding of q. Struct field order makes the
// encoding canonical.
func cacheKey(q restaurant.StoreQuery) (string, error) {
	data, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("marshal query: %w", err)
	}
	h := sha256.Sum256(data)
	return KeyPrefix + hex.EncodeToString(h[:]), nil
}

func (c *CachedLister) getFromCache(ctx context.Context, key string) ([]restaurant.RawRecord, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached records", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	// UseNumber keeps numeric fields as json.Number, matching the store client.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var recs []restaurant.RawRecord
	if err := dec.Decode(&recs); err != nil {
		c.logger.Warn("Failed to parse cached records", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return recs, true
}

func (c *CachedLister) putToCache(ctx context.Context, key string, recs []restaurant.RawRecord) {
	if recs == nil {
		recs = []restaurant.RawRecord{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		c.logger.Warn("Failed to encode records for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache records", zap.String("key", key), zap.Error(err))
	}
}
