// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package item

import (
	"maps"
	"slices"

	"github.com/samber/oops"
)

// OriginTag is the metadata tag holding the identity of the descriptor that
// produced an artifact.
const OriginTag = "itemforge:origin"

// Materialize produces a fresh host artifact reflecting the descriptor's
// current state. It may be called any number of times; the descriptor is not
// changed. The display name and every lore line go through the platform
// formatter. A tint on a kind that cannot be tinted is dropped. Returns the
// recorded mutation error, if any, instead of an artifact.
func (d *Descriptor) Materialize() (Artifact, error) {
	if d.err != nil {
		return nil, d.err
	}

	p := d.factory.platform
	a, err := p.NewArtifact(d.kind, d.quantity)
	if err != nil {
		return nil, oops.In("item").With("kind", d.kind.Name()).With("descriptor_id", d.id.String()).
			Wrapf(err, "creating artifact")
	}

	meta := a.Meta()
	f := p.Formatter()
	if d.hasName {
		meta.SetDisplayName(style(f, d.name, d.nameColor))
	}
	lore := make([]string, len(d.lore))
	for i, line := range d.lore {
		lore[i] = style(f, line, "")
	}
	meta.SetLore(lore)
	meta.AddFlags(d.Flags()...)
	for _, kind := range slices.Sorted(maps.Keys(d.modifiers)) {
		meta.AddModifier(kind, d.modifiers[kind], true)
	}
	if maxDurability(d.kind) > 0 {
		meta.SetDamage(d.wear)
	}
	meta.SetUnbreakable(d.unbreakable)
	if d.tint != nil && d.kind.SupportsTint() {
		meta.SetTint(*d.tint)
	}
	meta.SetTag(OriginTag, d.id.String())
	a.SetMeta(meta)

	d.factory.observer.Materialized(d.kind.Name())
	d.factory.logger.Debug("descriptor materialized",
		"descriptor_id", d.id.String(),
		"artifact_id", a.ID().String(),
		"kind", d.kind.Name(),
	)
	return a, nil
}

// style renders text through f. Formatting codes in text are rendered even
// when color is empty.
func style(f Formatter, text, color string) string {
	if f == nil {
		return text
	}
	return f.Style(text, color)
}
