// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package recipe reads item recipes: YAML documents that describe one or
// more descriptors declaratively.
//
//	requires: ">= 1.0"
//	items:
//	  - kind: DIAMOND_SWORD
//	    name: Excalibur
//	    name_color: gold
//	    lore: [Legendary]
//	    flags: ["HIDE_*"]
//	    modifiers: {SHARPNESS: 5}
//	    unbreakable: true
package recipe

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/holomush/itemforge/internal/schema"
	"github.com/holomush/itemforge/pkg/catalog"
	"github.com/holomush/itemforge/pkg/item"
	"github.com/holomush/itemforge/pkg/textfmt"
)

// Error codes for recipe failures.
const (
	CodeInvalid      = "RECIPE_INVALID"
	CodeIncompatible = "RECIPE_INCOMPATIBLE"
)

// SchemaFile is the file name of the recipe JSON Schema.
const SchemaFile = "recipe.schema.json"

// File is a recipe document.
type File struct {
	// Requires is a semantic version constraint on the catalog, e.g. ">= 1.0".
	Requires string  `yaml:"requires,omitempty" jsonschema:"description=Catalog version constraint"`
	Items    []Entry `yaml:"items" jsonschema:"minItems=1"`
}

// Entry describes one descriptor.
type Entry struct {
	Kind     string `yaml:"kind" jsonschema:"minLength=1,description=Catalog kind identifier"`
	Quantity int    `yaml:"quantity,omitempty" jsonschema:"minimum=1,description=Stack size; defaults to 1"`

	Name      string   `yaml:"name,omitempty" jsonschema:"description=Display name; & introduces formatting codes"`
	NameColor string   `yaml:"name_color,omitempty" jsonschema:"description=Colour name or legacy code for the display name"`
	Lore      []string `yaml:"lore,omitempty"`
	// Flags are glob patterns matched against the catalog flag domain.
	Flags     []string       `yaml:"flags,omitempty" jsonschema:"description=Flag names or glob patterns"`
	Modifiers map[string]int `yaml:"modifiers,omitempty" jsonschema:"description=Modifier levels by kind"`

	DurabilityUsed      *int   `yaml:"durability_used,omitempty" jsonschema:"minimum=0"`
	RemainingDurability *int   `yaml:"remaining_durability,omitempty" jsonschema:"minimum=0"`
	Unbreakable         bool   `yaml:"unbreakable,omitempty"`
	Tint                string `yaml:"tint,omitempty" jsonschema:"pattern=^#?[0-9a-fA-F]{6}$,description=RGB dye colour"`
	Track               bool   `yaml:"track,omitempty" jsonschema:"description=Register the descriptor even when tracking is off"`
}

var validator = schema.NewValidator(SchemaFile, GenerateSchema)

// GenerateSchema generates the JSON Schema for recipe files.
func GenerateSchema() ([]byte, error) {
	return schema.Generate(&File{}, SchemaFile, "Item Recipe", "Declarative item descriptors")
}

// Parse validates and decodes a recipe document.
func Parse(data []byte) (*File, error) {
	if err := validator.ValidateYAML(data); err != nil {
		return nil, oops.In("recipe").Code(CodeInvalid).Wrap(err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, oops.In("recipe").Code(CodeInvalid).Wrapf(err, "invalid YAML")
	}
	for i, e := range f.Items {
		if e.DurabilityUsed != nil && e.RemainingDurability != nil {
			return nil, oops.In("recipe").Code(CodeInvalid).With("index", i).With("kind", e.Kind).
				Errorf("item %d sets both durability_used and remaining_durability", i)
		}
	}
	return &f, nil
}

// Load reads and parses the recipe at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, oops.In("recipe").With("path", path).Hint("failed to read recipe file").Wrap(err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, oops.In("recipe").With("path", path).Wrap(err)
	}
	return f, nil
}

// Check reports whether cat satisfies the recipe's catalog constraint.
func (f *File) Check(cat *catalog.Catalog) error {
	if f.Requires == "" {
		return nil
	}
	ok, err := cat.Satisfies(f.Requires)
	if err != nil {
		return oops.In("recipe").Code(CodeInvalid).Wrap(err)
	}
	if !ok {
		return oops.In("recipe").Code(CodeIncompatible).
			With("requires", f.Requires).With("catalog_version", cat.Version().String()).
			Errorf("catalog %s does not satisfy %s", cat.Version(), f.Requires)
	}
	return nil
}

// Build checks the catalog constraint and builds every entry in order.
// When an entry fails, nothing built from f stays registered.
func (f *File) Build(fac *item.Factory, cat *catalog.Catalog) ([]*item.Descriptor, error) {
	if err := f.Check(cat); err != nil {
		return nil, err
	}
	out := make([]*item.Descriptor, 0, len(f.Items))
	for i, e := range f.Items {
		d, err := e.Build(fac, cat)
		if err != nil {
			// The file fails as a whole; forget entries built so far.
			for _, built := range out {
				if built.Tracked() {
					fac.Registry().Remove(built.ID())
				}
			}
			return nil, oops.In("recipe").With("index", i).Wrap(err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Build creates the descriptor e describes. Flag patterns are expanded
// against cat. A descriptor is registered only once every field applied
// cleanly.
func (e Entry) Build(fac *item.Factory, cat *catalog.Catalog) (*item.Descriptor, error) {
	qty := e.Quantity
	if qty == 0 {
		qty = 1
	}
	d, err := fac.Build(e.Kind, qty, func(d *item.Descriptor) error {
		return e.apply(d, cat)
	})
	if err != nil {
		return nil, err
	}
	if e.Track {
		d.MarkTracked()
	}
	return d, nil
}

func (e Entry) apply(d *item.Descriptor, cat *catalog.Catalog) error {
	if len(e.Flags) > 0 {
		flags, err := cat.ExpandFlags(e.Flags...)
		if err != nil {
			return oops.In("recipe").With("kind", e.Kind).Wrap(err)
		}
		d.AddFlags(flags...)
	}
	if e.Name != "" {
		d.SetDisplayName(e.Name)
	}
	if e.NameColor != "" {
		d.ColorName(e.NameColor)
	}
	if len(e.Lore) > 0 {
		d.SetLore(e.Lore)
	}
	if len(e.Modifiers) > 0 {
		mods := make(map[item.ModifierKind]int, len(e.Modifiers))
		for k, level := range e.Modifiers {
			mods[item.ModifierKind(k)] = level
		}
		d.AddModifiers(mods)
	}
	if e.DurabilityUsed != nil {
		d.SetDurabilityUsed(*e.DurabilityUsed)
	}
	if e.RemainingDurability != nil {
		d.SetRemainingDurability(*e.RemainingDurability)
	}
	if e.Unbreakable {
		d.SetUnbreakable(true)
	}
	if e.Tint != "" {
		tint, err := textfmt.ParseHexColor(e.Tint)
		if err != nil {
			return oops.In("recipe").Code(CodeInvalid).With("kind", e.Kind).Wrap(err)
		}
		d.SetTint(tint)
	}
	return nil
}

// FromDescriptor renders d as a recipe entry. Flags are written as exact
// names.
func FromDescriptor(d *item.Descriptor) Entry {
	e := Entry{
		Kind:        d.Kind().Name(),
		Quantity:    d.Quantity(),
		NameColor:   d.NameColor(),
		Lore:        d.LoreLines(),
		Unbreakable: d.Unbreakable(),
		Track:       d.Tracked(),
	}
	if name, ok := d.DisplayName(); ok {
		e.Name = name
	}
	for _, f := range d.Flags() {
		e.Flags = append(e.Flags, string(f))
	}
	if mods := d.Modifiers(); len(mods) > 0 {
		e.Modifiers = make(map[string]int, len(mods))
		for k, level := range mods {
			e.Modifiers[string(k)] = level
		}
	}
	if wear := d.DurabilityUsed(); wear > 0 {
		e.DurabilityUsed = &wear
	}
	if tint, ok := d.Tint(); ok {
		e.Tint = textfmt.HexColor(tint)
	}
	return e
}

// Marshal encodes descriptors as a recipe document.
func Marshal(requires string, ds ...*item.Descriptor) ([]byte, error) {
	f := File{Requires: requires}
	for _, d := range ds {
		f.Items = append(f.Items, FromDescriptor(d))
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, oops.In("recipe").Wrapf(err, "encode recipe")
	}
	return data, nil
}
