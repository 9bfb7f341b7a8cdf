// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/holomush/itemforge/pkg/item"
)

// Compile-time interface check.
var _ item.Kind = (*Kind)(nil)

// Kind is one catalog entry.
type Kind struct {
	ID         string `yaml:"name" jsonschema:"pattern=^[A-Z][A-Z0-9_]*$,description=Catalog identifier"`
	Display    string `yaml:"display,omitempty" jsonschema:"description=Default display name; derived from name when empty"`
	Durability int    `yaml:"max_durability,omitempty" jsonschema:"minimum=0,description=Wear at which the item breaks; 0 means the kind does not wear"`
	Tintable   bool   `yaml:"tintable,omitempty" jsonschema:"description=Whether items of this kind can be dyed"`
	MaxStack   int    `yaml:"max_stack,omitempty" jsonschema:"minimum=1,maximum=99,description=Largest stack size the host allows"`
}

// Name implements item.Kind.
func (k *Kind) Name() string { return k.ID }

// MaxDurability implements item.Kind.
func (k *Kind) MaxDurability() int { return k.Durability }

// SupportsTint implements item.Kind.
func (k *Kind) SupportsTint() bool { return k.Tintable }

// SupportsDurability implements item.Kind.
func (k *Kind) SupportsDurability() bool { return k.Durability > 0 }

// StackLimit returns the host stack limit, defaulting to 64.
func (k *Kind) StackLimit() int {
	if k.MaxStack == 0 {
		return defaultMaxStack
	}
	return k.MaxStack
}

// DefaultName returns the name shown when an item has no display name.
// "DIAMOND_SWORD" becomes "Diamond Sword" unless the entry sets display.
func (k *Kind) DefaultName() string {
	if k.Display != "" {
		return k.Display
	}
	return TitleName(k.ID)
}

// TitleName turns an upper snake case identifier into title case words.
// A Caser is stateful, so each call gets its own.
func TitleName(id string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.ReplaceAll(id, "_", " ")))
}

const defaultMaxStack = 64
