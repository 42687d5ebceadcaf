// Package registry implements the process-wide identifier table shared by
// the native backends in this module.
//
// A Registry hands out monotonically increasing tokens tagged with a
// native.Kind. Tokens are never reused, so a stale ID can always be told
// apart from a live one.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/wgsafe/native"
)

var (
	// ErrUnknownID is returned when an ID was never allocated or has
	// already been released.
	ErrUnknownID = errors.New("registry: unknown or released id")

	// ErrKindMismatch is returned when an ID is live but names a
	// different kind of resource.
	ErrKindMismatch = errors.New("registry: id kind mismatch")
)

type entry[T any] struct {
	kind  native.Kind
	value T
}

// Registry maps IDs to backend objects. The zero value is ready to use.
// Registry is safe for concurrent use.
type Registry[T any] struct {
	mu      sync.Mutex
	next    uint64
	entries map[uint64]entry[T]
}

// Register stores v under a fresh ID of the given kind.
func (r *Registry[T]) Register(kind native.Kind, v T) native.ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[uint64]entry[T])
	}
	r.next++
	r.entries[r.next] = entry[T]{kind: kind, value: v}
	return native.NewID(r.next)
}

// Lookup returns the object stored under id, checking its kind.
func (r *Registry[T]) Lookup(kind native.Kind, id native.ID) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.find(kind, id)
	return e.value, err
}

// Replace swaps the object stored under a live id.
func (r *Registry[T]) Replace(kind native.Kind, id native.ID, v T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.find(kind, id); err != nil {
		return err
	}
	r.entries[id.Token()] = entry[T]{kind: kind, value: v}
	return nil
}

// Unregister removes id and returns the object it named.
func (r *Registry[T]) Unregister(kind native.Kind, id native.ID) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.find(kind, id)
	if err != nil {
		return e.value, err
	}
	delete(r.entries, id.Token())
	return e.value, nil
}

// KindOf reports the kind of a live id.
func (r *Registry[T]) KindOf(id native.ID) (native.Kind, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id.Token()]
	return e.kind, ok
}

// Len returns the number of live IDs.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// LenKind returns the number of live IDs of one kind.
func (r *Registry[T]) LenKind(kind native.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.entries {
		if e.kind == kind {
			n++
		}
	}
	return n
}

// Must panics if err is non-nil, otherwise returns v.
// Backends use it to abort on invalid native input.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func (r *Registry[T]) find(kind native.Kind, id native.ID) (entry[T], error) {
	e, ok := r.entries[id.Token()]
	if !ok || id.IsZero() {
		return e, fmt.Errorf("%w: %s %s", ErrUnknownID, kind, id)
	}
	if e.kind != kind {
		return e, fmt.Errorf("%w: %s is %s, want %s", ErrKindMismatch, id, e.kind, kind)
	}
	return e, nil
}
