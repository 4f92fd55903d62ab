// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// redisstore.go — Redis-backed storage adapter: one string key per persisted
// value, optional global key prefix, no expiry. redis.Nil is translated to
// storage.ErrNotFound so the wrapper can write the default on first run.

// Package redisstore provides the Redis storage adapter.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/AndrewDonelson/persistent/internal/storage"
	"github.com/redis/go-redis/v9"
)

// Store is the Redis storage adapter.
type Store struct {
	client    redis.UniversalClient
	keyPrefix string
}

// Options configures a new Store.
type Options struct {
	Client    redis.UniversalClient
	KeyPrefix string
}

// New creates a new Store.
func New(opts Options) *Store {
	return &Store{client: opts.Client, keyPrefix: opts.KeyPrefix}
}

// key returns the Redis key for a storage key.
func (s *Store) key(k string) string {
	if s.keyPrefix != "" {
		return s.keyPrefix + ":" + k
	}
	return k
}

// Read returns the bytes stored under key.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	k := s.key(key)
	b, err := s.client.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", k, err)
	}
	return b, nil
}

// Write stores data under key with no expiry.
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	k := s.key(key)
	if err := s.client.Set(ctx, k, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", k, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	k := s.key(key)
	if err := s.client.Del(ctx, k).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis delete %s: %w", k, err)
	}
	return nil
}

// Exists reports whether key is present.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	k := s.key(key)
	n, err := s.client.Exists(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", k, err)
	}
	return n > 0, nil
}

// Ping checks that Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// FormatKey returns the Redis key used for a storage key.
func (s *Store) FormatKey(key string) string {
	return s.key(key)
}
