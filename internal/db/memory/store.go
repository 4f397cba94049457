// Package memory is an in-process cache backend: a size-bounded LRU whose
// entries also expire after a TTL.
package memory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kailas-cloud/bistrohunter/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config bounds the in-process cache.
type Config struct {
	MaxEntries int
	TTL        time.Duration
}

// Store implements db.Store on top of an expirable LRU.
// Every entry shares the store TTL; per-call TTLs cannot extend it.
type Store struct {
	lru    *expirable.LRU[string, []byte]
	closed atomic.Bool
}

// NewStore creates an in-process store.
func NewStore(cfg Config) *Store {
	size := cfg.MaxEntries
	if size <= 0 {
		size = 1024
	}
	return &Store{lru: expirable.NewLRU[string, []byte](size, nil, cfg.TTL)}
}

// Ping reports whether the store is open.
func (s *Store) Ping(_ context.Context) error {
	if s.closed.Load() {
		return &db.Error{Op: db.OpPing, Err: db.ErrClosed}
	}
	return nil
}

// Get returns a copy of the stored value.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, &db.Error{Op: db.OpGet, Err: db.ErrClosed}
	}
	v, ok := s.lru.Get(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if s.closed.Load() {
		return &db.Error{Op: db.OpSet, Err: db.ErrClosed}
	}
	s.lru.Add(key, append([]byte(nil), value...))
	return nil
}

// SetWithTTL stores value. The store-wide TTL applies.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, _ time.Duration) error {
	return s.Set(ctx, key, value)
}

// Del removes a key.
func (s *Store) Del(_ context.Context, key string) error {
	if s.closed.Load() {
		return &db.Error{Op: db.OpDel, Err: db.ErrClosed}
	}
	s.lru.Remove(key)
	return nil
}

// Len returns the number of live entries.
func (s *Store) Len() int { return s.lru.Len() }

// Close purges the cache and rejects further use.
func (s *Store) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.lru.Purge()
	}
}
