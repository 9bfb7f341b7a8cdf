// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package memhost

import (
	"image/color"
	"maps"
	"slices"

	"github.com/holomush/itemforge/pkg/item"
)

// Compile-time interface check.
var _ item.Meta = (*Meta)(nil)

// Modifier is one applied modifier.
type Modifier struct {
	Level   int
	Visible bool
}

// Meta is an in-memory item metadata object.
type Meta struct {
	name        string
	hasName     bool
	lore        []string
	flags       map[item.Flag]struct{}
	modifiers   map[item.ModifierKind]Modifier
	damage      int
	unbreakable bool
	tint        *color.NRGBA
	tags        map[string]string
}

// NewMeta returns empty metadata.
func NewMeta() *Meta {
	return &Meta{
		flags:     make(map[item.Flag]struct{}),
		modifiers: make(map[item.ModifierKind]Modifier),
		tags:      make(map[string]string),
	}
}

func (m *Meta) clone() *Meta {
	c := &Meta{
		name:        m.name,
		hasName:     m.hasName,
		lore:        slices.Clone(m.lore),
		flags:       maps.Clone(m.flags),
		modifiers:   maps.Clone(m.modifiers),
		damage:      m.damage,
		unbreakable: m.unbreakable,
		tags:        maps.Clone(m.tags),
	}
	if m.tint != nil {
		t := *m.tint
		c.tint = &t
	}
	return c
}

// DisplayName implements item.Meta.
func (m *Meta) DisplayName() (string, bool) { return m.name, m.hasName }

// SetDisplayName implements item.Meta.
func (m *Meta) SetDisplayName(name string) { m.name, m.hasName = name, true }

// Lore returns a copy of the lore lines.
func (m *Meta) Lore() []string { return slices.Clone(m.lore) }

// SetLore implements item.Meta. lines is copied.
func (m *Meta) SetLore(lines []string) { m.lore = slices.Clone(lines) }

// Flags returns the applied flags in sorted order.
func (m *Meta) Flags() []item.Flag { return slices.Sorted(maps.Keys(m.flags)) }

// HasFlag implements item.Meta.
func (m *Meta) HasFlag(flag item.Flag) bool {
	_, ok := m.flags[flag]
	return ok
}

// AddFlags implements item.Meta.
func (m *Meta) AddFlags(flags ...item.Flag) {
	for _, f := range flags {
		m.flags[f] = struct{}{}
	}
}

// RemoveFlags implements item.Meta.
func (m *Meta) RemoveFlags(flags ...item.Flag) {
	for _, f := range flags {
		delete(m.flags, f)
	}
}

// Modifiers returns the level of every applied modifier.
func (m *Meta) Modifiers() map[item.ModifierKind]int {
	out := make(map[item.ModifierKind]int, len(m.modifiers))
	for k, v := range m.modifiers {
		out[k] = v.Level
	}
	return out
}

// ModifierEntry returns one modifier with its visibility.
func (m *Meta) ModifierEntry(kind item.ModifierKind) (Modifier, bool) {
	v, ok := m.modifiers[kind]
	return v, ok
}

// AddModifier sets kind to level. The level is stored as given.
func (m *Meta) AddModifier(kind item.ModifierKind, level int, visible bool) {
	m.modifiers[kind] = Modifier{Level: level, Visible: visible}
}

// RemoveModifier implements item.Meta.
func (m *Meta) RemoveModifier(kind item.ModifierKind) { delete(m.modifiers, kind) }

// Damage implements item.Meta.
func (m *Meta) Damage() int { return m.damage }

// SetDamage implements item.Meta.
func (m *Meta) SetDamage(damage int) { m.damage = damage }

// Unbreakable implements item.Meta.
func (m *Meta) Unbreakable() bool { return m.unbreakable }

// SetUnbreakable implements item.Meta.
func (m *Meta) SetUnbreakable(unbreakable bool) { m.unbreakable = unbreakable }

// Tint returns the dye colour, if one is set.
func (m *Meta) Tint() (color.NRGBA, bool) {
	if m.tint == nil {
		return color.NRGBA{}, false
	}
	return *m.tint, true
}

// SetTint implements item.Meta.
func (m *Meta) SetTint(tint color.NRGBA) { m.tint = &tint }

// Tag implements item.Meta.
func (m *Meta) Tag(key string) (string, bool) {
	v, ok := m.tags[key]
	return v, ok
}

// SetTag implements item.Meta.
func (m *Meta) SetTag(key, value string) { m.tags[key] = value }

// Tags returns a copy of every tag field.
func (m *Meta) Tags() map[string]string { return maps.Clone(m.tags) }
