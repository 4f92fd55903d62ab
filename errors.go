// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// errors.go — sentinel error variables returned by the public API, covering
// loading, persisting, configuration, and codec failures.

// Package persistent binds a typed in-memory value to a durable, key-addressed
// store. The value is loaded (or initialized from a default) when the wrapper
// is built and written back wholesale on every mutation, encoded with one of
// a closed set of formats.
package persistent

import (
	"errors"
	"fmt"

	"github.com/AndrewDonelson/persistent/internal/codec"
	"github.com/AndrewDonelson/persistent/internal/storage"
)

// Operation errors
var (
	ErrLoad    = errors.New("persistent: load failed")
	ErrPersist = errors.New("persistent: persist failed")
	ErrConfig  = errors.New("persistent: invalid configuration")
)

// Data errors
var (
	ErrNotFound     = storage.ErrNotFound
	ErrDecodeFailed = errors.New("persistent: failed to decode stored value")
	ErrEncodeFailed = errors.New("persistent: failed to encode value for storage")
	ErrUnsupported  = codec.ErrUnsupported
)

// FormatError is returned by Format.Serialize and Format.Deserialize. It
// matches ErrEncodeFailed or ErrDecodeFailed and the underlying cause.
type FormatError struct {
	Format Format
	Op     string // "serialize" or "deserialize"
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Format, e.Op, e.Err)
}

func (e *FormatError) Unwrap() []error {
	if e.Op == opSerialize {
		return []error{ErrEncodeFailed, e.Err}
	}
	return []error{ErrDecodeFailed, e.Err}
}

// IsCodecError reports whether err was produced by a format codec rather
// than by the storage backend.
func IsCodecError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
