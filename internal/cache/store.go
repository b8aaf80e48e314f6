package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Record is one stored response body.
type Record struct {
	Body      []byte    `json:"body"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Store persists records by key. Eviction is the store's own policy.
type Store interface {
	Get(ctx context.Context, key Key) (Record, bool, error)
	Set(ctx context.Context, key Key, rec Record) error
	Delete(ctx context.Context, key Key) error
}

// MemoryStore is a size- and TTL-bounded in-process Store.
type MemoryStore struct {
	lru *expirable.LRU[Key, Record]
}

// NewMemoryStore keeps at most size records, each for at most ttl (0 = no expiry).
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = 256
	}
	return &MemoryStore{lru: expirable.NewLRU[Key, Record](size, nil, ttl)}
}

func (s *MemoryStore) Get(_ context.Context, key Key) (Record, bool, error) {
	rec, ok := s.lru.Get(key)
	return rec, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key Key, rec Record) error {
	s.lru.Add(key, rec)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key Key) error {
	s.lru.Remove(key)
	return nil
}

// Len returns the number of live records.
func (s *MemoryStore) Len() int {
	return s.lru.Len()
}
