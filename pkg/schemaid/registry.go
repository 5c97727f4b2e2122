package schemaid

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-schemagen/pkg/typedesc"
)

var (
	// ErrUnknownType is returned when registering an unnameable type.
	ErrUnknownType = errors.New("schemaid: type has no identity")
	// ErrInvalidKey is returned when a pinned key sanitizes to nothing.
	ErrInvalidKey = errors.New("schemaid: invalid key")
	// ErrConflictingKey indicates the type or key is already pinned to
	// something else.
	ErrConflictingKey = errors.New("schemaid: conflicting key registration")
)

// Registry pins explicit keys for selected types and delegates everything
// else to a fallback resolver. Pinned keys are sanitized and must stay unique
// so the type-to-key mapping remains injective.
type Registry struct {
	fallback Resolver

	mu     sync.RWMutex
	byType map[string]string
	byKey  map[string]string
}

var _ Resolver = (*Registry)(nil)

// NewRegistry constructs a Registry. A nil fallback uses Default.
func NewRegistry(fallback Resolver) *Registry {
	if fallback == nil {
		fallback = Default{}
	}
	return &Registry{
		fallback: fallback,
		byType:   make(map[string]string),
		byKey:    make(map[string]string),
	}
}

// Register pins key for t. Re-registering the same pair is a no-op.
func (r *Registry) Register(t typedesc.Type, key string) error {
	id := typedesc.Identity(t)
	if id == "" {
		return ErrUnknownType
	}
	sanitized := Sanitize(key)
	if sanitized == "" {
		return ErrInvalidKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byType[id]; ok {
		if existing == sanitized {
			return nil
		}
		return fmt.Errorf("%w: %s already pinned to %q", ErrConflictingKey, id, existing)
	}
	if owner, ok := r.byKey[sanitized]; ok {
		return fmt.Errorf("%w: %q already used by %s", ErrConflictingKey, sanitized, owner)
	}
	r.byType[id] = sanitized
	r.byKey[sanitized] = id
	return nil
}

// Lookup returns the pinned key for t, if any.
func (r *Registry) Lookup(t typedesc.Type) (string, bool) {
	id := typedesc.Identity(t)
	if id == "" {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.byType[id]
	return key, ok
}

// Resolve implements Resolver.
func (r *Registry) Resolve(t typedesc.Type) string {
	if key, ok := r.Lookup(t); ok {
		return key
	}
	return r.fallback.Resolve(t)
}

// Len returns the number of pinned keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byType)
}
