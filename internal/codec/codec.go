// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// codec.go — the Codec interface every storage format implements, plus the
// shared helpers used by codecs that only accept struct values.

// Package codec provides encode/decode implementations for persisted values.
package codec

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnsupported is returned when a codec cannot represent the given value.
var ErrUnsupported = errors.New("codec: unsupported value")

// Codec encodes and decodes values for persistent storage.
type Codec interface {
	// Marshal serializes v into bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into v (must be a pointer).
	Unmarshal(data []byte, v any) error
	// Name returns the codec identifier used for diagnostics.
	Name() string
}

// structPtr returns v as a non-nil pointer to a struct. A struct value is
// copied into a fresh pointer only when allowValue is set.
func structPtr(v any, allowValue bool) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil", ErrUnsupported)
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("%w: %s is not a struct pointer", ErrUnsupported, rv.Type())
		}
		return v, nil
	}
	if !allowValue || rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrUnsupported, rv.Type())
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p.Interface(), nil
}
