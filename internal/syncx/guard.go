// Package syncx provides extended synchronization primitives
package syncx

import "sync"

// RWGuard holds a value that is replaced wholesale, never edited in place.
// Readers always observe either the previous or the next value in full.
type RWGuard[T any] struct {
	mu    sync.RWMutex
	value T
	gen   uint64
}

// NewGuard creates a guarded value.
func NewGuard[T any](initial T) *RWGuard[T] {
	return &RWGuard[T]{value: initial}
}

// Get returns the current value (T should be a value type or never mutated after Swap).
func (g *RWGuard[T]) Get() T {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.value
}

// Load returns the current value and the number of times it has been replaced.
func (g *RWGuard[T]) Load() (T, uint64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.value, g.gen
}

// Swap atomically replaces and returns old value.
func (g *RWGuard[T]) Swap(v T) T {
	g.mu.Lock()
	defer g.mu.Unlock()
	old := g.value
	g.value = v
	g.gen++
	return old
}
