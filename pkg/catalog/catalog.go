// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package catalog loads the host item catalog: the item kinds, the flag
// domain and the modifier domain a game server exposes.
//
// Catalogs are YAML documents validated against a generated JSON Schema and
// gated on their format version. Entries can be queried with glob patterns
// such as "HIDE_*" or "*_SWORD".
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/gobwas/glob"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/holomush/itemforge/pkg/item"
)

// SupportedVersions is the range of catalog format versions this package reads.
const SupportedVersions = "^1.0.0"

// Error codes for catalog failures.
const (
	CodeInvalidCatalog = "CATALOG_INVALID"
	CodeUnsupported    = "CATALOG_UNSUPPORTED_VERSION"
	CodeBadPattern     = "CATALOG_BAD_PATTERN"
	CodeNoMatch        = "CATALOG_NO_MATCH"
)

//go:embed default.yaml
var defaultCatalog []byte

// File is the on-disk catalog format.
type File struct {
	Version   string   `yaml:"version" jsonschema:"description=Catalog format version (semantic version)"`
	Kinds     []Kind   `yaml:"kinds" jsonschema:"minItems=1"`
	Flags     []string `yaml:"flags,omitempty" jsonschema:"description=Flag domain"`
	Modifiers []string `yaml:"modifiers,omitempty" jsonschema:"description=Modifier kind domain"`
}

// Catalog is a validated, immutable item catalog.
// It is safe for concurrent use.
type Catalog struct {
	version   *semver.Version
	kinds     map[string]*Kind
	order     []*Kind
	flags     []item.Flag
	modifiers []item.ModifierKind
}

// Parse validates and decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, oops.In("catalog").Code(CodeInvalidCatalog).Wrap(err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, oops.In("catalog").Code(CodeInvalidCatalog).Wrapf(err, "invalid YAML")
	}
	return New(f)
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, oops.In("catalog").With("path", path).Hint("failed to read catalog file").Wrap(err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, oops.In("catalog").With("path", path).Wrap(err)
	}
	return c, nil
}

// Default returns the embedded catalog of common kinds.
// Panics if the embedded document is invalid.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// New builds a catalog from an already decoded file.
func New(f File) (*Catalog, error) {
	v, err := semver.StrictNewVersion(f.Version)
	if err != nil {
		return nil, oops.In("catalog").Code(CodeInvalidCatalog).With("version", f.Version).
			Wrapf(err, "version must be a semantic version")
	}
	supported, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return nil, oops.In("catalog").Wrap(err)
	}
	if !supported.Check(v) {
		return nil, oops.In("catalog").Code(CodeUnsupported).With("version", f.Version).With("supported", SupportedVersions).
			Errorf("catalog version %s is not supported", f.Version)
	}

	c := &Catalog{
		version: v,
		kinds:   make(map[string]*Kind, len(f.Kinds)),
	}
	for i := range f.Kinds {
		k := f.Kinds[i]
		if k.ID == "" {
			return nil, oops.In("catalog").Code(CodeInvalidCatalog).With("index", i).Errorf("kind %d has no name", i)
		}
		if _, dup := c.kinds[k.ID]; dup {
			return nil, oops.In("catalog").Code(CodeInvalidCatalog).With("kind", k.ID).Errorf("duplicate kind %s", k.ID)
		}
		if k.Durability < 0 {
			return nil, oops.In("catalog").Code(CodeInvalidCatalog).With("kind", k.ID).
				Errorf("kind %s has negative max_durability", k.ID)
		}
		c.kinds[k.ID] = &k
		c.order = append(c.order, &k)
	}

	flags, err := uniqueNames[item.Flag]("flag", f.Flags)
	if err != nil {
		return nil, err
	}
	c.flags = flags
	mods, err := uniqueNames[item.ModifierKind]("modifier", f.Modifiers)
	if err != nil {
		return nil, err
	}
	c.modifiers = mods
	return c, nil
}

func uniqueNames[T ~string](what string, names []string) ([]T, error) {
	out := make([]T, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return nil, oops.In("catalog").Code(CodeInvalidCatalog).Errorf("%s name cannot be empty", what)
		}
		if seen[name] {
			return nil, oops.In("catalog").Code(CodeInvalidCatalog).With(what, name).Errorf("duplicate %s %s", what, name)
		}
		seen[name] = true
		out = append(out, T(name))
	}
	return out, nil
}

// Version returns the catalog format version.
func (c *Catalog) Version() *semver.Version {
	return c.version
}

// Satisfies reports whether the catalog version meets constraint, e.g. ">= 1.1".
func (c *Catalog) Satisfies(constraint string) (bool, error) {
	cons, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, oops.In("catalog").Code(CodeInvalidCatalog).With("constraint", constraint).
			Wrapf(err, "invalid version constraint")
	}
	return cons.Check(c.version), nil
}

// Kind returns the kind named id.
func (c *Catalog) Kind(id string) (*Kind, bool) {
	k, ok := c.kinds[id]
	return k, ok
}

// Kinds returns every kind in file order.
func (c *Catalog) Kinds() []*Kind {
	return slices.Clone(c.order)
}

// Flags returns the flag domain in file order.
func (c *Catalog) Flags() []item.Flag {
	return slices.Clone(c.flags)
}

// Modifiers returns the modifier domain in file order.
func (c *Catalog) Modifiers() []item.ModifierKind {
	return slices.Clone(c.modifiers)
}

// HasFlag reports whether flag belongs to the flag domain.
func (c *Catalog) HasFlag(flag item.Flag) bool {
	return slices.Contains(c.flags, flag)
}

// HasModifier reports whether kind belongs to the modifier domain.
func (c *Catalog) HasModifier(kind item.ModifierKind) bool {
	return slices.Contains(c.modifiers, kind)
}

// MatchKinds returns the kinds whose names match a glob pattern.
func (c *Catalog) MatchKinds(pattern string) ([]*Kind, error) {
	g, err := compile(pattern)
	if err != nil {
		return nil, err
	}
	var out []*Kind
	for _, k := range c.order {
		if g.Match(k.ID) {
			out = append(out, k)
		}
	}
	return out, nil
}

// MatchFlags returns the flags matching a glob pattern.
func (c *Catalog) MatchFlags(pattern string) ([]item.Flag, error) {
	return match(pattern, c.flags)
}

// MatchModifiers returns the modifier kinds matching a glob pattern.
func (c *Catalog) MatchModifiers(pattern string) ([]item.ModifierKind, error) {
	return match(pattern, c.modifiers)
}

// ExpandFlags resolves each pattern against the flag domain. Every pattern
// must match at least one flag. The result has no duplicates and keeps
// domain order.
func (c *Catalog) ExpandFlags(patterns ...string) ([]item.Flag, error) {
	selected := make(map[item.Flag]bool)
	for _, pattern := range patterns {
		matched, err := c.MatchFlags(pattern)
		if err != nil {
			return nil, err
		}
		if len(matched) == 0 {
			return nil, oops.In("catalog").Code(CodeNoMatch).With("pattern", pattern).
				Errorf("no flag matches %q", pattern)
		}
		for _, f := range matched {
			selected[f] = true
		}
	}
	var out []item.Flag
	for _, f := range c.flags {
		if selected[f] {
			out = append(out, f)
		}
	}
	return out, nil
}

func match[T ~string](pattern string, domain []T) ([]T, error) {
	g, err := compile(pattern)
	if err != nil {
		return nil, err
	}
	var out []T
	for _, v := range domain {
		if g.Match(string(v)) {
			out = append(out, v)
		}
	}
	return out, nil
}

func compile(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, oops.In("catalog").Code(CodeBadPattern).With("pattern", pattern).Wrapf(err, "invalid pattern")
	}
	return g, nil
}
