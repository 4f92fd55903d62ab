// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// fs.go — filesystem adapter. The key is the literal file path; the file
// holds the encoded value with nothing added around it.

// Package fs provides the native filesystem storage adapter.
package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/AndrewDonelson/persistent/internal/storage"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store reads and writes one file per key.
type Store struct{}

// New creates a filesystem Store.
func New() *Store { return &Store{} }

// Read returns the contents of the file at path.
func (s *Store) Read(_ context.Context, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("fs read %s: %w", path, err)
	}
	return b, nil
}

// Write replaces the file at path, creating parent directories as needed.
func (s *Store) Write(_ context.Context, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("fs mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("fs write %s: %w", path, err)
	}
	return nil
}

// Delete removes the file at path. Deleting a missing file is not an error.
func (s *Store) Delete(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("fs delete %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a file exists at path.
func (s *Store) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("fs stat %s: %w", path, err)
}
