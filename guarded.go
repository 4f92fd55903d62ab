package persistent

import "sync"

// Guarded serializes access to a Persistent. Read callbacks may run
// concurrently; Write callbacks run exclusively.
type Guarded[T any] struct {
	mu sync.RWMutex
	p  *Persistent[T]
}

// NewGuarded wraps p. p must not be used directly afterwards.
func NewGuarded[T any](p *Persistent[T]) *Guarded[T] {
	return &Guarded[T]{p: p}
}

// Read runs fn under the shared lock. fn must not mutate the wrapper.
func (g *Guarded[T]) Read(fn func(*Persistent[T])) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn(g.p)
}

// Write runs fn under the exclusive lock and returns its error.
func (g *Guarded[T]) Write(fn func(*Persistent[T]) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.p)
}

// Get returns a copy of the value and whether the wrapper is loaded.
func (g *Guarded[T]) Get() (T, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.p.TryGet()
}

// Update is Write(p.Update(fn)).
func (g *Guarded[T]) Update(fn func(*T)) error {
	return g.Write(func(p *Persistent[T]) error { return p.Update(fn) })
}
