// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// backend.go — the storage Backend contract and constructors for the
// bundled adapters: filesystem, in-memory, Redis, PostgreSQL, and bbolt.

package persistent

import (
	"context"

	"github.com/AndrewDonelson/persistent/internal/storage"
	"github.com/AndrewDonelson/persistent/internal/storage/boltstore"
	"github.com/AndrewDonelson/persistent/internal/storage/fs"
	"github.com/AndrewDonelson/persistent/internal/storage/memory"
	"github.com/AndrewDonelson/persistent/internal/storage/pgstore"
	"github.com/AndrewDonelson/persistent/internal/storage/redisstore"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Backend is a key-addressed byte store. Read returns ErrNotFound for a
// missing key; Write replaces the whole value.
type Backend = storage.Backend

// Bundled backend types.
type (
	FileBackend     = fs.Store
	MemoryBackend   = memory.Store
	RedisBackend    = redisstore.Store
	PostgresBackend = pgstore.Store
	BoltBackend     = boltstore.Store
)

// NewFileBackend returns a backend that treats keys as filesystem paths.
func NewFileBackend() *FileBackend { return fs.New() }

// NewMemoryBackend returns an in-process backend. Contents are lost when the
// process exits.
func NewMemoryBackend() *MemoryBackend { return memory.New() }

// NewRedisBackend stores each value as one Redis string with no expiry.
// keyPrefix, when set, is joined to every key with ":".
func NewRedisBackend(client redis.UniversalClient, keyPrefix string) *RedisBackend {
	return redisstore.New(redisstore.Options{Client: client, KeyPrefix: keyPrefix})
}

// NewPostgresBackend connects to dsn and ensures table exists. An empty
// table uses "persistent_objects".
func NewPostgresBackend(ctx context.Context, dsn, table string) (*PostgresBackend, error) {
	return pgstore.Connect(ctx, dsn, pgstore.Options{Table: table})
}

// NewPostgresBackendFromPool wraps an existing pool. The caller must create
// the table with EnsureTable.
func NewPostgresBackendFromPool(pool *pgxpool.Pool, table string) *PostgresBackend {
	return pgstore.New(pool, pgstore.Options{Table: table})
}

// OpenBoltBackend opens or creates a bbolt file at path holding all values
// in bucket. An empty bucket uses "persistent".
func OpenBoltBackend(path, bucket string) (*BoltBackend, error) {
	return boltstore.Open(path, bucket)
}
