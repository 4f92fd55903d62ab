// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// persistent.go — Persistent[T], a typed value mirrored to a storage key.
// The wrapper is either Loaded (value in memory) or Unloaded. Every mutation
// rewrites the whole encoded value; a failed write never rolls back the
// in-memory change.

package persistent

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/AndrewDonelson/persistent/internal/clock"
	"github.com/AndrewDonelson/persistent/internal/metrics"
)

// Operation names used in logs and metrics.
const (
	opLoad    = "load"
	opReload  = "reload"
	opPersist = "persist"
	opRevert  = "revert"
)

// Persistent holds a value of type T synchronized with durable storage.
//
// A Persistent does no locking of its own. Share it between goroutines only
// through a Guarded.
type Persistent[T any] struct {
	name           string
	format         Format
	location       Location
	backend        Backend
	defaultData    []byte
	revertible     bool
	revertOnDecode bool

	value *T // nil iff unloaded
	// synced is the checksum of the bytes last read from or written to
	// storage, used to skip reloads of unchanged data.
	synced uint64

	logger  Logger
	metrics metrics.MetricsRecorder
	clock   clock.Clock
	ctx     context.Context
}

// ────────────────────────────────────────────────────────────────────────────
// Accessors
// ────────────────────────────────────────────────────────────────────────────

func (p *Persistent[T]) Name() string       { return p.name }
func (p *Persistent[T]) Format() Format     { return p.format }
func (p *Persistent[T]) Location() Location { return p.location }
func (p *Persistent[T]) IsRevertible() bool { return p.revertible }
func (p *Persistent[T]) IsLoaded() bool     { return p.value != nil }
func (p *Persistent[T]) IsUnloaded() bool   { return p.value == nil }

// Get returns a copy of the value. It panics if the wrapper is unloaded.
func (p *Persistent[T]) Get() T {
	if p.value == nil {
		panic(fmt.Sprintf("persistent: tried to get unloaded %s", p.name))
	}
	return *p.value
}

// GetMut returns a pointer to the in-memory value. Changes made through it
// are not written until Persist. It panics if the wrapper is unloaded.
func (p *Persistent[T]) GetMut() *T {
	if p.value == nil {
		panic(fmt.Sprintf("persistent: tried to get unloaded %s mutably", p.name))
	}
	return p.value
}

// TryGet returns a copy of the value and true, or the zero value and false
// when unloaded.
func (p *Persistent[T]) TryGet() (T, bool) {
	if p.value == nil {
		var zero T
		return zero, false
	}
	return *p.value, true
}

// TryGetMut returns the in-memory value, or nil and false when unloaded.
func (p *Persistent[T]) TryGetMut() (*T, bool) {
	return p.value, p.value != nil
}

// ────────────────────────────────────────────────────────────────────────────
// Mutation
// ────────────────────────────────────────────────────────────────────────────

// Set replaces the value, entering Loaded, and writes it to storage. On a
// write failure the new value is kept in memory and the error returned.
func (p *Persistent[T]) Set(v T) error {
	p.value = &v
	return p.Persist()
}

// Update applies fn to the in-memory value and writes the result. It panics
// if the wrapper is unloaded.
func (p *Persistent[T]) Update(fn func(*T)) error {
	if p.value == nil {
		panic(fmt.Sprintf("persistent: tried to update unloaded %s", p.name))
	}
	fn(p.value)
	return p.Persist()
}

// Persist writes the in-memory value to storage. It panics if the wrapper
// is unloaded.
func (p *Persistent[T]) Persist() error {
	if p.value == nil {
		panic(fmt.Sprintf("persistent: tried to save unloaded %s", p.name))
	}
	start := p.clock.Now()
	defer p.observe(opPersist, start)

	data, err := p.format.Serialize(*p.value)
	if err != nil {
		p.logger.Warn("failed to serialize", "name", p.name, "format", p.format.String(), "err", err)
		return p.fail(opPersist, fmt.Errorf("%w: save %s to %s: %w", ErrPersist, p.name, p.location, err))
	}
	if err := p.backend.Write(p.ctx, p.location.Path, data); err != nil {
		return p.fail(opPersist, fmt.Errorf("%w: save %s to %s: %w", ErrPersist, p.name, p.location, err))
	}
	p.synced = checksum(data)
	p.metrics.RecordPersist(p.name, len(data))
	p.logger.Info("saved", "name", p.name, "location", p.location.String())
	return nil
}

// RevertToDefault sets the value to a fresh copy of the default and writes
// it, entering Loaded. A non-revertible wrapper returns ErrConfig and is left
// untouched.
func (p *Persistent[T]) RevertToDefault() error {
	if !p.revertible {
		return fmt.Errorf("%w: tried to revert non-revertible %s", ErrConfig, p.name)
	}
	v, err := p.defaultCopy()
	if err != nil {
		return p.fail(opRevert, fmt.Errorf("%w: revert %s: %w", ErrPersist, p.name, err))
	}
	if err := p.Set(*v); err != nil {
		return err
	}
	p.logger.Info("reverted to default", "name", p.name, "location", p.location.String())
	return nil
}

// RevertToDefaultInMemory sets the value to a fresh copy of the default
// without writing it, entering Loaded.
func (p *Persistent[T]) RevertToDefaultInMemory() error {
	if !p.revertible {
		return fmt.Errorf("%w: tried to revert non-revertible %s", ErrConfig, p.name)
	}
	v, err := p.defaultCopy()
	if err != nil {
		return p.fail(opRevert, fmt.Errorf("%w: revert %s in memory: %w", ErrLoad, p.name, err))
	}
	p.value = v
	p.logger.Info("reverted to default in memory", "name", p.name)
	return nil
}

// ────────────────────────────────────────────────────────────────────────────
// Load / unload
// ────────────────────────────────────────────────────────────────────────────

// Unload writes the value and drops it from memory. If the write fails the
// wrapper stays Loaded. Unloading an unloaded wrapper does nothing.
func (p *Persistent[T]) Unload() error {
	if p.value == nil {
		return nil
	}
	if err := p.Persist(); err != nil {
		p.logger.Error("failed to unload: could not persist first", "name", p.name, "err", err)
		return err
	}
	p.value = nil
	p.logger.Info("unloaded", "name", p.name)
	return nil
}

// UnloadWithoutPersisting drops the value from memory without writing it.
func (p *Persistent[T]) UnloadWithoutPersisting() {
	if p.value == nil {
		return
	}
	p.value = nil
	p.logger.Info("unloaded without persisting", "name", p.name)
}

// Reload reads the value from storage, entering Loaded. If nothing is
// stored the default is written, as on first Build. On failure the previous
// state is kept.
func (p *Persistent[T]) Reload() error {
	return p.load(opReload)
}

// load reads storage into memory. The wrapper state changes only on success.
func (p *Persistent[T]) load(op string) error {
	start := p.clock.Now()
	defer p.observe(op, start)

	data, err := p.backend.Read(p.ctx, p.location.Path)
	if errors.Is(err, ErrNotFound) {
		return p.initialize(op)
	}
	if err != nil {
		p.logger.Error("failed to "+op, "name", p.name, "location", p.location.String(), "err", err)
		return p.fail(op, fmt.Errorf("%w: %s %s from %s: %w", ErrLoad, op, p.name, p.location, err))
	}
	return p.adopt(op, data)
}

// adopt decodes data and makes it the in-memory value.
func (p *Persistent[T]) adopt(op string, data []byte) error {
	v := new(T)
	if err := p.format.Deserialize(data, v); err != nil {
		p.logger.Warn("failed to deserialize", "name", p.name, "format", p.format.String(), "err", err)
		loadErr := p.fail(op, fmt.Errorf("%w: %s %s from %s: %w", ErrLoad, op, p.name, p.location, err))
		if !p.revertOnDecode {
			p.logger.Error("failed to "+op+" due to a deserialization error", "name", p.name, "location", p.location.String())
			return loadErr
		}
		p.logger.Info("reverting to default automatically", "name", p.name, "location", p.location.String())
		if err := p.storeDefault(op); err != nil {
			return loadErr
		}
		p.logger.Info("reverted to default", "name", p.name, "location", p.location.String())
		return nil
	}
	p.value = v
	p.synced = checksum(data)
	p.metrics.RecordLoad(p.name, metrics.SourceStorage)
	p.logger.Info(op+"ed", "name", p.name, "location", p.location.String())
	return nil
}

// initialize writes the default to storage and loads a copy of it.
func (p *Persistent[T]) initialize(op string) error {
	if err := p.storeDefault(op); err != nil {
		return err
	}
	p.logger.Info("saved default", "name", p.name, "location", p.location.String())
	return nil
}

// storeDefault writes the default to storage and, only once the write has
// succeeded, replaces the in-memory value with a copy of it.
func (p *Persistent[T]) storeDefault(op string) error {
	v, err := p.defaultCopy()
	if err != nil {
		return p.fail(op, fmt.Errorf("%w: copy default %s: %w", ErrLoad, p.name, err))
	}
	if err := p.backend.Write(p.ctx, p.location.Path, p.defaultData); err != nil {
		p.logger.Error("failed to save default", "name", p.name, "location", p.location.String(), "err", err)
		return p.fail(op, fmt.Errorf("%w: save default %s to %s: %w", ErrLoad, p.name, p.location, err))
	}
	p.value = v
	p.synced = checksum(p.defaultData)
	p.metrics.RecordLoad(p.name, metrics.SourceDefault)
	return nil
}

// reloadIfChanged reloads only when the stored bytes differ from the ones
// last read or written. It reports whether a reload happened.
func (p *Persistent[T]) reloadIfChanged() (bool, error) {
	data, err := p.backend.Read(p.ctx, p.location.Path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, p.fail(opReload, fmt.Errorf("%w: reload %s from %s: %w", ErrLoad, p.name, p.location, err))
	}
	if p.value != nil && checksum(data) == p.synced {
		return false, nil
	}
	start := p.clock.Now()
	defer p.observe(opReload, start)
	if err := p.adopt(opReload, data); err != nil {
		return false, err
	}
	return true, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────────────────────────────────

// defaultCopy decodes a fresh copy of the default.
func (p *Persistent[T]) defaultCopy() (*T, error) {
	v := new(T)
	if err := p.format.Deserialize(p.defaultData, v); err != nil {
		p.logger.Error("failed to copy default", "name", p.name, "err", err)
		return nil, err
	}
	return v, nil
}

func (p *Persistent[T]) fail(op string, err error) error {
	p.metrics.RecordError(p.name, op)
	return err
}

func (p *Persistent[T]) observe(op string, start time.Time) {
	p.metrics.RecordLatency(p.name, op, p.clock.Now().Sub(start))
}

func checksum(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64()
}
