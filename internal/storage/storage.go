// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// storage.go — the key-addressed Backend contract shared by every storage
// adapter, and the ErrNotFound sentinel that lets the wrapper tell a first
// run apart from a read failure.

// Package storage defines the byte-level storage contract used by persistent
// values. Each adapter lives in its own sub-package.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when nothing is stored under the key.
// Callers use errors.Is(err, storage.ErrNotFound) to distinguish a missing
// value from a genuine I/O error.
var ErrNotFound = errors.New("storage: not found")

// Backend reads and writes whole values addressed by a string key. Writes
// always replace the previous contents.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
