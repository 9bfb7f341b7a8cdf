// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package item models buildable game items as validated descriptors.
//
// A Descriptor holds everything needed to produce one item: its kind,
// quantity, display name, lore lines, flags, modifiers, wear, unbreakable
// state and tint. Descriptors are created through a Factory, mutated through
// chained calls, and turned into host artifacts by Materialize. The host game
// platform is reached only through the interfaces in host.go.
//
// Mutators return the descriptor so calls can be chained:
//
//	d, err := factory.FromKind(sword, 1)
//	if err != nil {
//		return err
//	}
//	artifact, err := d.SetDisplayName("Excalibur").
//		AppendLoreLine("Legendary").
//		AddFlags("HIDE_ATTRIBUTES").
//		AddModifier("SHARPNESS", 5).
//		Materialize()
//
// The first failing mutator records its error on the descriptor and leaves
// every field untouched. Later mutators in the chain are skipped until the
// error is inspected with Err and cleared with ClearErr. Materialize returns
// the recorded error instead of producing an artifact.
//
// A Registry maps materialized artifacts back to the descriptors that
// produced them. Only descriptors that opt in (MarkTracked, or a factory built
// WithTracking(true)) are recorded.
package item
