// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package item

import (
	"fmt"
	"image/color"
	"maps"
	"slices"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Descriptor is the buildable state of one item.
//
// Descriptors are not safe for concurrent use. Clone a descriptor before
// handing it to another goroutine.
type Descriptor struct {
	id      ulid.ULID
	factory *Factory

	kind        Kind
	quantity    int
	name        string
	hasName     bool
	nameColor   string
	lore        []string
	flags       map[Flag]struct{}
	modifiers   map[ModifierKind]int
	wear        int
	unbreakable bool
	tint        *color.NRGBA

	tracked bool
	err     error
}

// apply runs fn unless an earlier mutation failed. fn must validate before
// touching any field so a failure leaves the descriptor unchanged.
func (d *Descriptor) apply(fn func() error) *Descriptor {
	if d.err != nil {
		return d
	}
	if err := fn(); err != nil {
		d.err = err
	}
	return d
}

// Err returns the error recorded by the first failed mutation, if any.
func (d *Descriptor) Err() error {
	return d.err
}

// ClearErr forgets a recorded error so further mutations apply again.
func (d *Descriptor) ClearErr() *Descriptor {
	d.err = nil
	return d
}

// ID returns the descriptor's identity. Two descriptors with equal fields
// still have different identities.
func (d *Descriptor) ID() ulid.ULID {
	return d.id
}

// Kind returns the item kind.
func (d *Descriptor) Kind() Kind {
	return d.kind
}

// Quantity returns the stack size.
func (d *Descriptor) Quantity() int {
	return d.quantity
}

// DisplayName returns the display name text and whether one is set.
func (d *Descriptor) DisplayName() (string, bool) {
	return d.name, d.hasName
}

// NameColor returns the colour token applied to the display name.
func (d *Descriptor) NameColor() string {
	return d.nameColor
}

// LoreLines returns a copy of the lore lines in order.
func (d *Descriptor) LoreLines() []string {
	return slices.Clone(d.lore)
}

// Flags returns the flags in sorted order.
func (d *Descriptor) Flags() []Flag {
	return slices.Sorted(maps.Keys(d.flags))
}

// HasFlag reports whether flag is set.
func (d *Descriptor) HasFlag(flag Flag) bool {
	_, ok := d.flags[flag]
	return ok
}

// HasFlags reports whether any flag is set.
func (d *Descriptor) HasFlags() bool {
	return len(d.flags) > 0
}

// Modifiers returns a copy of the modifier levels.
func (d *Descriptor) Modifiers() map[ModifierKind]int {
	return maps.Clone(d.modifiers)
}

// Modifier returns the level of one modifier.
func (d *Descriptor) Modifier(kind ModifierKind) (int, bool) {
	level, ok := d.modifiers[kind]
	return level, ok
}

// HasModifiers reports whether any modifier is set.
func (d *Descriptor) HasModifiers() bool {
	return len(d.modifiers) > 0
}

// DurabilityUsed returns the accumulated wear.
func (d *Descriptor) DurabilityUsed() int {
	return d.wear
}

// RemainingDurability returns the wear left before the item breaks.
func (d *Descriptor) RemainingDurability() int {
	return maxDurability(d.kind) - d.wear
}

// Unbreakable reports whether the item ignores wear.
func (d *Descriptor) Unbreakable() bool {
	return d.unbreakable
}

// Tint returns the tint colour and whether one is set.
func (d *Descriptor) Tint() (color.NRGBA, bool) {
	if d.tint == nil {
		return color.NRGBA{}, false
	}
	return *d.tint, true
}

// Tracked reports whether the descriptor has opted into its factory's registry.
// A bounded registry may since have evicted it.
func (d *Descriptor) Tracked() bool {
	return d.tracked
}

// SetKind changes the item kind. Wear above the new kind's maximum is
// clamped to it.
func (d *Descriptor) SetKind(kind Kind) *Descriptor {
	return d.apply(func() error {
		if kind == nil {
			return invalidArgument("kind").Wrapf(ErrInvalidArgument, "kind is required")
		}
		d.kind = kind
		d.wear = min(d.wear, maxDurability(kind))
		return nil
	})
}

// SetQuantity sets the stack size. n must be at least 1.
func (d *Descriptor) SetQuantity(n int) *Descriptor {
	return d.apply(func() error {
		if n < 1 {
			return invalidArgument("quantity").With("quantity", n).
				Wrapf(ErrInvalidArgument, "quantity must be at least 1, got %d", n)
		}
		d.quantity = n
		return nil
	})
}

// SetDisplayName sets the display name text.
func (d *Descriptor) SetDisplayName(text string) *Descriptor {
	return d.apply(func() error {
		d.name, d.hasName = text, true
		return nil
	})
}

// ClearDisplayName removes the display name so the kind's default is shown.
func (d *Descriptor) ClearDisplayName() *Descriptor {
	return d.apply(func() error {
		d.name, d.hasName, d.nameColor = "", false, ""
		return nil
	})
}

// ColorName sets the colour token the platform formatter applies to the
// display name. The token is opaque to this package; an empty token clears it.
func (d *Descriptor) ColorName(token string) *Descriptor {
	return d.apply(func() error {
		d.nameColor = token
		return nil
	})
}

// SetUnbreakable toggles whether the item ignores wear.
func (d *Descriptor) SetUnbreakable(unbreakable bool) *Descriptor {
	return d.apply(func() error {
		d.unbreakable = unbreakable
		return nil
	})
}

// SetTint dyes the item. Fails with UNSUPPORTED_OPERATION if the kind cannot be tinted.
func (d *Descriptor) SetTint(c color.NRGBA) *Descriptor {
	return d.apply(func() error {
		if !d.kind.SupportsTint() {
			return unsupported(d.kind.Name()).Wrapf(ErrUnsupportedOperation, "kind %s cannot be tinted", d.kind.Name())
		}
		d.tint = &c
		return nil
	})
}

// ClearTint removes the tint.
func (d *Descriptor) ClearTint() *Descriptor {
	return d.apply(func() error {
		d.tint = nil
		return nil
	})
}

// SetDurabilityUsed sets the accumulated wear. value must lie in
// [0, kind.MaxDurability()].
func (d *Descriptor) SetDurabilityUsed(value int) *Descriptor {
	return d.apply(func() error {
		return d.setWear(value)
	})
}

// SetRemainingDurability sets the wear so that remaining life equals value.
// value must lie in [0, kind.MaxDurability()].
func (d *Descriptor) SetRemainingDurability(value int) *Descriptor {
	return d.apply(func() error {
		limit := maxDurability(d.kind)
		if value < 0 || value > limit {
			return invalidArgument("remaining_durability").With("value", value).With("max", limit).
				Wrapf(ErrInvalidArgument, "remaining durability %d outside [0, %d]", value, limit)
		}
		d.wear = limit - value
		return nil
	})
}

// DamageBy adds delta to the accumulated wear. A negative delta repairs.
func (d *Descriptor) DamageBy(delta int) *Descriptor {
	return d.apply(func() error {
		return d.setWear(d.wear + delta)
	})
}

func (d *Descriptor) setWear(value int) error {
	limit := maxDurability(d.kind)
	if value < 0 || value > limit {
		return invalidArgument("durability_used").With("value", value).With("max", limit).
			Wrapf(ErrInvalidArgument, "durability used %d outside [0, %d]", value, limit)
	}
	d.wear = value
	return nil
}

// AddModifier sets kind to level, replacing any existing level.
func (d *Descriptor) AddModifier(kind ModifierKind, level int) *Descriptor {
	return d.apply(func() error {
		if err := validateModifier(d.factory.platform, kind, level); err != nil {
			return err
		}
		d.modifiers[kind] = level
		return nil
	})
}

// AddModifiers upserts every entry of levels. Nothing is applied if any entry is invalid.
func (d *Descriptor) AddModifiers(levels map[ModifierKind]int) *Descriptor {
	return d.apply(func() error {
		for kind, level := range levels {
			if err := validateModifier(d.factory.platform, kind, level); err != nil {
				return err
			}
		}
		maps.Copy(d.modifiers, levels)
		return nil
	})
}

func validateModifier(p Platform, kind ModifierKind, level int) error {
	if kind == "" {
		return invalidArgument("modifier").Wrapf(ErrInvalidArgument, "modifier kind is required")
	}
	if !p.HasModifier(kind) {
		return invalidArgument("modifier").With("modifier", string(kind)).
			Wrapf(ErrInvalidArgument, "unknown modifier %s", kind)
	}
	if level < 1 {
		return invalidArgument("modifier_level").With("modifier", string(kind)).With("level", level).
			Wrapf(ErrInvalidArgument, "modifier %s level must be at least 1, got %d", kind, level)
	}
	return nil
}

// RemoveModifier deletes the given modifiers. Missing keys are ignored.
func (d *Descriptor) RemoveModifier(kinds ...ModifierKind) *Descriptor {
	return d.apply(func() error {
		for _, kind := range kinds {
			delete(d.modifiers, kind)
		}
		return nil
	})
}

// RemoveModifiersWhere deletes every modifier whose level satisfies pred.
func (d *Descriptor) RemoveModifiersWhere(pred func(level int) bool) *Descriptor {
	return d.apply(func() error {
		if pred == nil {
			return invalidArgument("predicate").Wrapf(ErrInvalidArgument, "predicate is required")
		}
		maps.DeleteFunc(d.modifiers, func(_ ModifierKind, level int) bool {
			return pred(level)
		})
		return nil
	})
}

// RemoveModifiersAtLevel deletes every modifier whose level is one of levels.
func (d *Descriptor) RemoveModifiersAtLevel(levels ...int) *Descriptor {
	return d.RemoveModifiersWhere(func(level int) bool {
		return slices.Contains(levels, level)
	})
}

// AddFlags sets the given flags. An empty call is a no-op.
func (d *Descriptor) AddFlags(flags ...Flag) *Descriptor {
	return d.apply(func() error {
		for _, flag := range flags {
			if flag == "" {
				return invalidArgument("flag").Wrapf(ErrInvalidArgument, "flag cannot be empty")
			}
		}
		for _, flag := range flags {
			d.flags[flag] = struct{}{}
		}
		return nil
	})
}

// RemoveFlags clears the given flags. An empty call is a no-op.
func (d *Descriptor) RemoveFlags(flags ...Flag) *Descriptor {
	return d.apply(func() error {
		for _, flag := range flags {
			delete(d.flags, flag)
		}
		return nil
	})
}

// AllFlags sets every flag the platform defines.
func (d *Descriptor) AllFlags() *Descriptor {
	return d.AddFlags(d.factory.platform.Flags()...)
}

// NoFlags clears every flag the platform defines.
func (d *Descriptor) NoFlags() *Descriptor {
	return d.RemoveFlags(d.factory.platform.Flags()...)
}

// SetLore replaces the lore with a copy of lines.
func (d *Descriptor) SetLore(lines []string) *Descriptor {
	return d.apply(func() error {
		d.lore = slices.Clone(lines)
		return nil
	})
}

// AppendLoreLine adds a line at the end of the lore.
func (d *Descriptor) AppendLoreLine(text string) *Descriptor {
	return d.apply(func() error {
		d.lore = append(d.lore, text)
		return nil
	})
}

// InsertLoreLine places text at index. With overwrite the existing line at
// index is replaced and index must lie in [0, len-1]; otherwise later lines
// shift right and index must lie in [0, len].
func (d *Descriptor) InsertLoreLine(index int, text string, overwrite bool) *Descriptor {
	return d.apply(func() error {
		if overwrite {
			if index < 0 || index >= len(d.lore) {
				return indexOutOfRange(index, len(d.lore)).
					Wrapf(ErrIndexOutOfRange, "cannot overwrite lore line %d of %d", index, len(d.lore))
			}
			d.lore[index] = text
			return nil
		}
		if index < 0 || index > len(d.lore) {
			return indexOutOfRange(index, len(d.lore)).
				Wrapf(ErrIndexOutOfRange, "cannot insert lore line at %d of %d", index, len(d.lore))
		}
		d.lore = slices.Insert(d.lore, index, text)
		return nil
	})
}

// RemoveLoreLineAt deletes the line at index.
func (d *Descriptor) RemoveLoreLineAt(index int) *Descriptor {
	return d.apply(func() error {
		if index < 0 || index >= len(d.lore) {
			return indexOutOfRange(index, len(d.lore)).
				Wrapf(ErrIndexOutOfRange, "cannot remove lore line %d of %d", index, len(d.lore))
		}
		d.lore = slices.Delete(d.lore, index, index+1)
		return nil
	})
}

// RemoveLoreLineMatching deletes every line equal to text.
func (d *Descriptor) RemoveLoreLineMatching(text string) *Descriptor {
	return d.apply(func() error {
		d.lore = slices.DeleteFunc(d.lore, func(line string) bool {
			return line == text
		})
		return nil
	})
}

// ClearLore removes every lore line.
func (d *Descriptor) ClearLore() *Descriptor {
	return d.apply(func() error {
		d.lore = nil
		return nil
	})
}

// MarkTracked records the descriptor in its factory's registry so artifacts
// it produces can be looked up. Calling it again has no effect.
func (d *Descriptor) MarkTracked() *Descriptor {
	return d.apply(func() error {
		d.factory.registry.Register(d)
		d.tracked = true
		return nil
	})
}

// Clone returns a deep copy with a fresh identity. The copy is untracked and
// carries no recorded error.
func (d *Descriptor) Clone() *Descriptor {
	c := &Descriptor{
		id:          NewID(),
		factory:     d.factory,
		kind:        d.kind,
		quantity:    d.quantity,
		name:        d.name,
		hasName:     d.hasName,
		nameColor:   d.nameColor,
		lore:        slices.Clone(d.lore),
		flags:       maps.Clone(d.flags),
		modifiers:   maps.Clone(d.modifiers),
		wear:        d.wear,
		unbreakable: d.unbreakable,
	}
	if d.tint != nil {
		tint := *d.tint
		c.tint = &tint
	}
	return c
}

// Equal reports whether d and other describe the same item. Identity,
// tracking and recorded errors are not compared.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.kind.Name() != other.kind.Name() ||
		d.quantity != other.quantity ||
		d.hasName != other.hasName ||
		d.name != other.name ||
		d.nameColor != other.nameColor ||
		d.wear != other.wear ||
		d.unbreakable != other.unbreakable {
		return false
	}
	if (d.tint == nil) != (other.tint == nil) || (d.tint != nil && *d.tint != *other.tint) {
		return false
	}
	return slices.Equal(d.lore, other.lore) &&
		maps.Equal(d.flags, other.flags) &&
		maps.Equal(d.modifiers, other.modifiers)
}

// String returns a compact human-readable summary.
func (d *Descriptor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s x%d", d.kind.Name(), d.quantity)
	if d.hasName {
		fmt.Fprintf(&b, " name=%q", d.name)
	}
	if len(d.lore) > 0 {
		fmt.Fprintf(&b, " lore=%q", d.lore)
	}
	if len(d.flags) > 0 {
		fmt.Fprintf(&b, " flags=%v", d.Flags())
	}
	if len(d.modifiers) > 0 {
		parts := make([]string, 0, len(d.modifiers))
		for _, kind := range slices.Sorted(maps.Keys(d.modifiers)) {
			parts = append(parts, fmt.Sprintf("%s:%d", kind, d.modifiers[kind]))
		}
		fmt.Fprintf(&b, " modifiers={%s}", strings.Join(parts, ","))
	}
	if limit := maxDurability(d.kind); limit > 0 {
		fmt.Fprintf(&b, " wear=%d/%d", d.wear, limit)
	}
	if d.unbreakable {
		b.WriteString(" unbreakable")
	}
	if d.tint != nil {
		fmt.Fprintf(&b, " tint=#%02x%02x%02x", d.tint.R, d.tint.G, d.tint.B)
	}
	return b.String()
}
