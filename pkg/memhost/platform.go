// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package memhost is an in-memory item platform backed by a catalog.
// It stands in for a game server host in tools and tests.
package memhost

import (
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/holomush/itemforge/pkg/catalog"
	"github.com/holomush/itemforge/pkg/item"
	"github.com/holomush/itemforge/pkg/textfmt"
)

// Compile-time interface check.
var _ item.Platform = (*Platform)(nil)

// Platform creates in-memory artifacts for kinds from one catalog.
// It is safe for concurrent use.
type Platform struct {
	catalog   *catalog.Catalog
	formatter item.Formatter
}

// Option configures a Platform.
type Option func(*Platform)

// WithFormatter replaces the default legacy-code formatter.
func WithFormatter(f item.Formatter) Option {
	return func(p *Platform) {
		p.formatter = f
	}
}

// New creates a platform for cat. A nil catalog selects catalog.Default().
func New(cat *catalog.Catalog, opts ...Option) *Platform {
	if cat == nil {
		cat = catalog.Default()
	}
	p := &Platform{
		catalog:   cat,
		formatter: textfmt.Formatter{Alternate: '&'},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Catalog returns the backing catalog.
func (p *Platform) Catalog() *catalog.Catalog {
	return p.catalog
}

// NewArtifact creates an artifact with empty metadata. The kind must belong
// to the platform catalog.
func (p *Platform) NewArtifact(kind item.Kind, quantity int) (item.Artifact, error) {
	if kind == nil {
		return nil, oops.In("memhost").Code(item.CodeInvalidArgument).Wrapf(item.ErrInvalidArgument, "kind is required")
	}
	k, ok := p.catalog.Kind(kind.Name())
	if !ok {
		return nil, oops.In("memhost").Code(item.CodeInvalidArgument).With("kind", kind.Name()).
			Wrapf(item.ErrInvalidArgument, "kind %s is not in the catalog", kind.Name())
	}
	if quantity < 1 {
		return nil, oops.In("memhost").Code(item.CodeInvalidArgument).With("quantity", quantity).
			Wrapf(item.ErrInvalidArgument, "quantity must be at least 1, got %d", quantity)
	}
	return &Artifact{
		id:       ulid.Make(),
		kind:     k,
		quantity: quantity,
		meta:     NewMeta(),
	}, nil
}

// Kind resolves a catalog identifier.
func (p *Platform) Kind(name string) (item.Kind, bool) {
	k, ok := p.catalog.Kind(name)
	if !ok {
		return nil, false
	}
	return k, true
}

// Flags returns the catalog flag domain.
func (p *Platform) Flags() []item.Flag {
	return p.catalog.Flags()
}

// HasModifier reports whether kind is in the catalog modifier domain.
func (p *Platform) HasModifier(kind item.ModifierKind) bool {
	return p.catalog.HasModifier(kind)
}

// Formatter returns the text formatter.
func (p *Platform) Formatter() item.Formatter {
	return p.formatter
}
