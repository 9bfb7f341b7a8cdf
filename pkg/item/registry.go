// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package item

import (
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oklog/ulid/v2"
)

// Registry maps descriptor identities, and through the origin tag the
// artifacts they produce, back to descriptors.
//
// An unbounded registry keeps every entry until Remove is called, so memory
// grows with the number of tracked descriptors. WithCapacity bounds it by
// evicting the least recently used entries.
//
// It is safe for concurrent use by multiple goroutines.
type Registry struct {
	mu       sync.RWMutex
	entries  map[ulid.ULID]*Descriptor
	bounded  *lru.Cache[ulid.ULID, *Descriptor]
	observer Observer
	logger   *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	capacity int
	observer Observer
	logger   *slog.Logger
}

// WithCapacity bounds the registry to n entries with LRU eviction.
// n <= 0 means unbounded.
func WithCapacity(n int) RegistryOption {
	return func(c *registryConfig) {
		c.capacity = n
	}
}

// WithRegistryObserver sets the observer notified on registration and lookup.
func WithRegistryObserver(o Observer) RegistryOption {
	return func(c *registryConfig) {
		c.observer = o
	}
}

// WithRegistryLogger sets the logger used for debug output.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(c *registryConfig) {
		c.logger = l
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	r := &Registry{
		observer: cfg.observer,
		logger:   cfg.logger,
	}
	if r.observer == nil {
		r.observer = nopObserver{}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if cfg.capacity > 0 {
		cache, err := lru.New[ulid.ULID, *Descriptor](cfg.capacity)
		if err != nil {
			// lru.New only fails for non-positive sizes.
			panic(err)
		}
		r.bounded = cache
	} else {
		r.entries = make(map[ulid.ULID]*Descriptor)
	}
	return r
}

// Register records d under its identity. Returns false if d is nil or
// already registered.
func (r *Registry) Register(d *Descriptor) bool {
	if d == nil {
		return false
	}

	r.mu.Lock()
	var size int
	if r.bounded != nil {
		if r.bounded.Contains(d.id) {
			r.mu.Unlock()
			return false
		}
		r.bounded.Add(d.id, d)
		size = r.bounded.Len()
	} else {
		if _, exists := r.entries[d.id]; exists {
			r.mu.Unlock()
			return false
		}
		r.entries[d.id] = d
		size = len(r.entries)
	}
	r.mu.Unlock()

	r.observer.Registered(size)
	r.logger.Debug("descriptor registered", "descriptor_id", d.id.String(), "size", size)
	return true
}

// Get returns the descriptor registered under id.
func (r *Registry) Get(id ulid.ULID) (*Descriptor, bool) {
	d, ok := r.get(id)
	r.observer.Looked(ok)
	return d, ok
}

func (r *Registry) get(id ulid.ULID) (*Descriptor, bool) {
	if r.bounded != nil {
		return r.bounded.Get(id)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[id]
	return d, ok
}

// Lookup returns the descriptor that produced a. It reports false when a was
// not materialized from a descriptor, or its descriptor was never tracked.
func (r *Registry) Lookup(a Artifact) (*Descriptor, bool) {
	if a == nil {
		r.observer.Looked(false)
		return nil, false
	}
	meta := a.Meta()
	if meta == nil {
		r.observer.Looked(false)
		return nil, false
	}
	raw, ok := meta.Tag(OriginTag)
	if !ok {
		r.observer.Looked(false)
		return nil, false
	}
	id, err := ulid.Parse(raw)
	if err != nil {
		r.observer.Looked(false)
		return nil, false
	}
	return r.Get(id)
}

// Resolve is Lookup for callers that treat a miss as an error.
// Returns a NOT_FOUND error wrapping ErrNotFound on a miss.
func (r *Registry) Resolve(a Artifact) (*Descriptor, error) {
	d, ok := r.Lookup(a)
	if !ok {
		b := notFound()
		if a != nil {
			b = b.With("artifact_id", a.ID().String())
		}
		return nil, b.Wrapf(ErrNotFound, "artifact was not produced by a tracked descriptor")
	}
	return d, nil
}

// Remove forgets the descriptor registered under id.
func (r *Registry) Remove(id ulid.ULID) bool {
	r.mu.Lock()
	var (
		removed bool
		size    int
	)
	if r.bounded != nil {
		removed = r.bounded.Remove(id)
		size = r.bounded.Len()
	} else if _, ok := r.entries[id]; ok {
		delete(r.entries, id)
		removed = true
		size = len(r.entries)
	}
	r.mu.Unlock()

	if removed {
		r.observer.Removed(size)
		r.logger.Debug("descriptor removed", "descriptor_id", id.String(), "size", size)
	}
	return removed
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	if r.bounded != nil {
		return r.bounded.Len()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
