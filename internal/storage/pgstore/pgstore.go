// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// pgstore.go — PostgreSQL storage adapter. Every persisted value is one row
// of a key/bytes table; writes are upserts so Persist is idempotent.

// Package pgstore provides the PostgreSQL storage adapter.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/AndrewDonelson/persistent/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTable is the table used when Options.Table is empty.
const DefaultTable = "persistent_objects"

// Store is the PostgreSQL storage adapter.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

// Options configures a new Store.
type Options struct {
	Table string
}

// New creates a new Store from an existing pool.
func New(pool *pgxpool.Pool, opts Options) *Store {
	table := opts.Table
	if table == "" {
		table = DefaultTable
	}
	return &Store{pool: pool, table: table}
}

// Connect parses dsn, opens a pool and ensures the table exists.
func Connect(ctx context.Context, dsn string, opts Options) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pgstore parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgstore connect: %w", err)
	}
	s := New(pool, opts)
	if err := s.EnsureTable(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Table returns the quoted table name.
func (s *Store) Table() string {
	return pgx.Identifier{s.table}.Sanitize()
}

// EnsureTable creates the backing table if it does not exist.
func (s *Store) EnsureTable(ctx context.Context) error {
	sql := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, data BYTEA NOT NULL)", s.Table())
	if _, err := s.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("pgstore ensure table %s: %w", s.table, err)
	}
	return nil
}

// Ping verifies the pool is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Read returns the bytes stored under key.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	sql := fmt.Sprintf("SELECT data FROM %s WHERE key = $1", s.Table())
	var data []byte
	if err := s.pool.QueryRow(ctx, sql, key).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("pgstore read %s: %w", key, err)
	}
	return data, nil
}

// Write upserts data under key.
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	sql := fmt.Sprintf(
		"INSERT INTO %s (key, data) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data",
		s.Table(),
	)
	if _, err := s.pool.Exec(ctx, sql, key, data); err != nil {
		return fmt.Errorf("pgstore write %s: %w", key, err)
	}
	return nil
}

// Delete removes the row for key. A missing row is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	sql := fmt.Sprintf("DELETE FROM %s WHERE key = $1", s.Table())
	if _, err := s.pool.Exec(ctx, sql, key); err != nil {
		return fmt.Errorf("pgstore delete %s: %w", key, err)
	}
	return nil
}

// Exists reports whether a row for key is present.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	sql := fmt.Sprintf("SELECT 1 FROM %s WHERE key = $1 LIMIT 1", s.Table())
	var dummy int
	if err := s.pool.QueryRow(ctx, sql, key).Scan(&dummy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("pgstore exists %s: %w", key, err)
	}
	return true, nil
}

// IsUndefinedTable reports whether err is PostgreSQL's "relation does not exist".
func IsUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// Close shuts down the underlying connection pool.
func (s *Store) Close() { s.pool.Close() }
