// Package memory provides a sharded, concurrent in-memory storage adapter.
// Values live only as long as the Store.
package memory

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/AndrewDonelson/persistent/internal/storage"
)

const numShards = 32

// shard is one partition of the store.
type shard struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// Store is the sharded in-memory backend.
type Store struct {
	shards [numShards]*shard
}

// New creates an empty Store.
func New() *Store {
	s := &Store{}
	for i := 0; i < numShards; i++ {
		s.shards[i] = &shard{items: make(map[string][]byte)}
	}
	return s
}

func (s *Store) getShard(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return s.shards[h.Sum32()%numShards]
}

// Read returns a copy of the bytes stored under key.
func (s *Store) Read(_ context.Context, key string) ([]byte, error) {
	sh := s.getShard(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	b, ok := sh.items[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

// Write stores a copy of data under key.
func (s *Store) Write(_ context.Context, key string, data []byte) error {
	sh := s.getShard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.items[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes key.
func (s *Store) Delete(_ context.Context, key string) error {
	sh := s.getShard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.items, key)
	return nil
}

// Exists reports whether key holds a value.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	sh := s.getShard(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	_, ok := sh.items[key]
	return ok, nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	total := 0
	for i := 0; i < numShards; i++ {
		sh := s.shards[i]
		sh.mu.RLock()
		total += len(sh.items)
		sh.mu.RUnlock()
	}
	return total
}

// Flush removes every key.
func (s *Store) Flush() {
	for i := 0; i < numShards; i++ {
		sh := s.shards[i]
		sh.mu.Lock()
		sh.items = make(map[string][]byte)
		sh.mu.Unlock()
	}
}
