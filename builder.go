// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// builder.go — fluent Builder that collects the wrapper's configuration,
// validates it, resolves the storage location, and performs the initial
// load (or writes the default on first run).

package persistent

import (
	"context"
	"fmt"

	"github.com/AndrewDonelson/persistent/internal/clock"
	"github.com/AndrewDonelson/persistent/internal/metrics"
)

// ────────────────────────────────────────────────────────────────────────────
// Config
// ────────────────────────────────────────────────────────────────────────────

// Config holds everything a Builder collects. It is exposed so callers can
// build wrappers from their own configuration structs via NewFromConfig.
type Config[T any] struct {
	Name   string
	Format Format
	// Path is a filesystem path on native builds, "local/..." or
	// "session/..." on js/wasm, or a plain key when Backend is set.
	Path string

	Default    T
	HasDefault bool

	// Loaded is true unless the wrapper should start Unloaded.
	Loaded     bool
	Revertible bool
	// RevertToDefaultOnDeserializationErrors replaces undecodable stored
	// data with the default instead of failing. Requires Revertible.
	RevertToDefaultOnDeserializationErrors bool

	// Optional overrideable components
	Backend Backend
	Logger  Logger
	Metrics metrics.MetricsRecorder
	Clock   clock.Clock
	// Context is passed to every Backend call. Defaults to Background.
	Context context.Context
}

func (c *Config[T]) defaults() {
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
	if c.Metrics == nil {
		c.Metrics = metrics.Noop{}
	}
	if c.Clock == nil {
		c.Clock = clock.Real{}
	}
	if c.Context == nil {
		c.Context = context.Background()
	}
}

func (c *Config[T]) validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name is required", ErrConfig)
	case c.Format == 0:
		return fmt.Errorf("%w: format is required for %s", ErrConfig, c.Name)
	case !c.Format.Valid():
		return fmt.Errorf("%w: unknown format %d for %s", ErrConfig, int(c.Format), c.Name)
	case c.Path == "":
		return fmt.Errorf("%w: path is required for %s", ErrConfig, c.Name)
	case !c.HasDefault:
		return fmt.Errorf("%w: default is required for %s", ErrConfig, c.Name)
	case c.RevertToDefaultOnDeserializationErrors && !c.Revertible:
		return fmt.Errorf("%w: revert to default on deserialization errors is set for non-revertible %s", ErrConfig, c.Name)
	}
	return nil
}

// ────────────────────────────────────────────────────────────────────────────
// Builder
// ────────────────────────────────────────────────────────────────────────────

// Builder configures and creates a Persistent[T].
//
//	keys, err := persistent.New[KeyBindings]().
//		Name("key bindings").
//		Format(persistent.TOML).
//		Path(filepath.Join(configDir, "key-bindings.toml")).
//		Default(KeyBindings{Jump: "Space", Crouch: "C"}).
//		Build()
type Builder[T any] struct {
	cfg Config[T]
}

// New returns a Builder. Wrappers start Loaded unless Unloaded is called.
func New[T any]() *Builder[T] {
	return &Builder[T]{cfg: Config[T]{Loaded: true}}
}

// Name sets the display name used in logs, errors, and metrics.
func (b *Builder[T]) Name(name string) *Builder[T] {
	b.cfg.Name = name
	return b
}

// Format sets the storage format.
func (b *Builder[T]) Format(f Format) *Builder[T] {
	b.cfg.Format = f
	return b
}

// Path sets the storage location.
func (b *Builder[T]) Path(path string) *Builder[T] {
	b.cfg.Path = path
	return b
}

// Default sets the value written on first run and used by reverts.
func (b *Builder[T]) Default(v T) *Builder[T] {
	b.cfg.Default = v
	b.cfg.HasDefault = true
	return b
}

func (b *Builder[T]) Loaded(loaded bool) *Builder[T] {
	b.cfg.Loaded = loaded
	return b
}

func (b *Builder[T]) Unloaded(unloaded bool) *Builder[T] {
	b.cfg.Loaded = !unloaded
	return b
}

func (b *Builder[T]) Revertible(revertible bool) *Builder[T] {
	b.cfg.Revertible = revertible
	return b
}

func (b *Builder[T]) RevertToDefaultOnDeserializationErrors(v bool) *Builder[T] {
	b.cfg.RevertToDefaultOnDeserializationErrors = v
	return b
}

// Backend stores the value in be under Path instead of the platform store.
func (b *Builder[T]) Backend(be Backend) *Builder[T] {
	b.cfg.Backend = be
	return b
}

func (b *Builder[T]) Logger(l Logger) *Builder[T] {
	b.cfg.Logger = l
	return b
}

func (b *Builder[T]) Metrics(m MetricsRecorder) *Builder[T] {
	b.cfg.Metrics = m
	return b
}

// Clock sets the time source used for latency metrics.
func (b *Builder[T]) Clock(c Clock) *Builder[T] {
	b.cfg.Clock = c
	return b
}

func (b *Builder[T]) Context(ctx context.Context) *Builder[T] {
	b.cfg.Context = ctx
	return b
}

// Build validates the configuration and creates the wrapper. When Loaded,
// the stored value is read, or the default is written if none exists yet.
// An Unloaded wrapper does not touch storage.
func (b *Builder[T]) Build() (*Persistent[T], error) {
	return NewFromConfig(b.cfg)
}

// NewFromConfig creates a wrapper from cfg. See Builder.Build.
func NewFromConfig[T any](cfg Config[T]) (*Persistent[T], error) {
	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var (
		loc     Location
		backend = cfg.Backend
		err     error
	)
	if backend != nil {
		loc = Location{Kind: BackendKey, Path: cfg.Path}
	} else {
		if loc, err = resolveLocation(cfg.Path); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Name, err)
		}
		if backend, err = platformBackend(loc); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Name, err)
		}
	}

	// The default is kept only in encoded form; every use decodes a fresh
	// copy so nothing can alias it.
	def, err := cfg.Format.Serialize(cfg.Default)
	if err != nil {
		cfg.Logger.Warn("failed to serialize default", "name", cfg.Name, "format", cfg.Format.String(), "err", err)
		return nil, fmt.Errorf("%w: default %s: %w", ErrConfig, cfg.Name, err)
	}

	p := &Persistent[T]{
		name:           cfg.Name,
		format:         cfg.Format,
		location:       loc,
		backend:        backend,
		defaultData:    def,
		revertible:     cfg.Revertible,
		revertOnDecode: cfg.RevertToDefaultOnDeserializationErrors,
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
		clock:          cfg.Clock,
		ctx:            cfg.Context,
	}
	if !cfg.Loaded {
		return p, nil
	}
	if err := p.load(opLoad); err != nil {
		return nil, err
	}
	return p, nil
}
