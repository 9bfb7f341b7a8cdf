// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package memhost

import (
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/holomush/itemforge/pkg/catalog"
	"github.com/holomush/itemforge/pkg/item"
	"github.com/holomush/itemforge/pkg/textfmt"
)

// Compile-time interface check.
var _ item.Artifact = (*Artifact)(nil)

// Artifact is an in-memory item stack.
// It is safe for concurrent use.
type Artifact struct {
	id       ulid.ULID
	kind     *catalog.Kind
	quantity int

	mu   sync.RWMutex
	meta *Meta
}

// ID returns the artifact identity.
func (a *Artifact) ID() ulid.ULID { return a.id }

// Kind returns the artifact kind.
func (a *Artifact) Kind() item.Kind { return a.kind }

// CatalogKind returns the catalog entry of the artifact kind.
func (a *Artifact) CatalogKind() *catalog.Kind { return a.kind }

// Quantity returns the stack size.
func (a *Artifact) Quantity() int { return a.quantity }

// Meta returns a copy of the metadata.
func (a *Artifact) Meta() item.Meta {
	return a.Snapshot()
}

// Snapshot is Meta with the concrete type.
func (a *Artifact) Snapshot() *Meta {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.meta.clone()
}

// SetMeta replaces the metadata. Metadata from another host is copied field by field.
func (a *Artifact) SetMeta(m item.Meta) {
	next := copyMeta(m)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.meta = next
}

// DisplayName returns what a player sees as the item name: the display
// name if set, otherwise the kind's default name.
func (a *Artifact) DisplayName() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.meta.hasName {
		return a.meta.name
	}
	return a.kind.DefaultName()
}

// PlainName is DisplayName without formatting codes.
func (a *Artifact) PlainName() string {
	return textfmt.Strip(a.DisplayName())
}

func copyMeta(m item.Meta) *Meta {
	if own, ok := m.(*Meta); ok {
		return own.clone()
	}
	out := NewMeta()
	if m == nil {
		return out
	}
	if name, ok := m.DisplayName(); ok {
		out.SetDisplayName(name)
	}
	out.SetLore(m.Lore())
	out.AddFlags(m.Flags()...)
	for k, level := range m.Modifiers() {
		out.AddModifier(k, level, true)
	}
	out.SetDamage(m.Damage())
	out.SetUnbreakable(m.Unbreakable())
	if tint, ok := m.Tint(); ok {
		out.SetTint(tint)
	}
	return out
}
