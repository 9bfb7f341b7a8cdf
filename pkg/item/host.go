// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package item

import (
	"image/color"

	"github.com/oklog/ulid/v2"
)

// Flag is a host-defined item capability flag, such as "HIDE_ATTRIBUTES".
type Flag string

// ModifierKind is a host-defined modifier identifier, such as "SHARPNESS".
type ModifierKind string

// Kind describes an item type from the host catalog.
type Kind interface {
	// Name returns the catalog identifier, e.g. "DIAMOND_SWORD".
	Name() string
	// MaxDurability returns the wear at which the item breaks.
	MaxDurability() int
	// SupportsTint reports whether items of this kind can be dyed.
	SupportsTint() bool
	// SupportsDurability reports whether items of this kind wear at all.
	SupportsDurability() bool
}

// Meta is the mutable metadata object a host attaches to an artifact.
type Meta interface {
	DisplayName() (string, bool)
	SetDisplayName(name string)

	Lore() []string
	SetLore(lines []string)

	Flags() []Flag
	HasFlag(flag Flag) bool
	AddFlags(flags ...Flag)
	RemoveFlags(flags ...Flag)

	Modifiers() map[ModifierKind]int
	AddModifier(kind ModifierKind, level int, visible bool)
	RemoveModifier(kind ModifierKind)

	Damage() int
	SetDamage(damage int)

	Unbreakable() bool
	SetUnbreakable(unbreakable bool)

	Tint() (color.NRGBA, bool)
	SetTint(tint color.NRGBA)

	// Tag and SetTag access free-form string fields stored with the item.
	Tag(key string) (string, bool)
	SetTag(key, value string)
}

// Artifact is a host-side item produced by materialization.
type Artifact interface {
	ID() ulid.ULID
	Kind() Kind
	Quantity() int
	// Meta returns a detached copy of the artifact's metadata.
	Meta() Meta
	// SetMeta replaces the artifact's metadata.
	SetMeta(meta Meta)
}

// Formatter renders display names and lore lines with an optional colour
// token. An empty colour leaves the colour unset; formatting codes inside the
// text are still rendered.
type Formatter interface {
	Style(text, color string) string
}

// Platform is the host item platform the core builds against.
type Platform interface {
	// NewArtifact creates an artifact of the given kind and quantity with empty metadata.
	NewArtifact(kind Kind, quantity int) (Artifact, error)
	// Kind resolves a catalog identifier.
	Kind(name string) (Kind, bool)
	// Flags returns the full flag domain.
	Flags() []Flag
	// HasModifier reports whether kind belongs to the modifier domain.
	HasModifier(kind ModifierKind) bool
	// Formatter returns the text formatter, or nil for plain text.
	Formatter() Formatter
}

// Observer receives notifications about descriptor activity.
// Implementations must be safe for concurrent use.
type Observer interface {
	Materialized(kind string)
	Registered(size int)
	Removed(size int)
	Looked(hit bool)
}

type nopObserver struct{}

func (nopObserver) Materialized(string) {}
func (nopObserver) Registered(int)      {}
func (nopObserver) Removed(int)         {}
func (nopObserver) Looked(bool)         {}

// maxDurability returns the wear ceiling for k; kinds without durability have none.
func maxDurability(k Kind) int {
	if !k.SupportsDurability() || k.MaxDurability() < 0 {
		return 0
	}
	return k.MaxDurability()
}
