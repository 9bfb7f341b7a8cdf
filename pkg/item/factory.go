// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package item

import (
	"log/slog"
	"slices"

	"github.com/samber/oops"
)

// Factory creates descriptors bound to one host platform.
// A Factory is safe for concurrent use; the descriptors it creates are not.
type Factory struct {
	platform Platform
	registry *Registry
	track    bool
	logger   *slog.Logger
	observer Observer
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithRegistry sets the registry used by MarkTracked and tracked construction.
// Without it the factory owns a private unbounded registry.
func WithRegistry(r *Registry) FactoryOption {
	return func(f *Factory) {
		f.registry = r
	}
}

// WithTracking makes every descriptor created by the factory register itself
// on construction. Tracked descriptors stay in the registry until removed.
func WithTracking(enabled bool) FactoryOption {
	return func(f *Factory) {
		f.track = enabled
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = l
	}
}

// WithObserver sets the observer notified on materialization.
func WithObserver(o Observer) FactoryOption {
	return func(f *Factory) {
		f.observer = o
	}
}

// NewFactory creates a factory for the given platform.
// Panics if p is nil.
func NewFactory(p Platform, opts ...FactoryOption) *Factory {
	if p == nil {
		panic("item.NewFactory: platform cannot be nil")
	}
	f := &Factory{platform: p}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	if f.observer == nil {
		f.observer = nopObserver{}
	}
	if f.registry == nil {
		f.registry = NewRegistry(WithRegistryLogger(f.logger))
	}
	return f
}

// Platform returns the host platform.
func (f *Factory) Platform() Platform {
	return f.platform
}

// Registry returns the registry descriptors are tracked in.
func (f *Factory) Registry() *Registry {
	return f.registry
}

// Tracking reports whether new descriptors are registered on construction.
func (f *Factory) Tracking() bool {
	return f.track
}

// FromKind creates an empty descriptor of the given kind.
// Returns an INVALID_ARGUMENT error if kind is nil or quantity is below 1.
func (f *Factory) FromKind(kind Kind, quantity int) (*Descriptor, error) {
	d, err := f.create(kind, quantity)
	if err != nil {
		return nil, err
	}
	f.adopt(d)
	return d, nil
}

// FromKindName resolves name through the platform catalog and calls FromKind.
func (f *Factory) FromKindName(name string, quantity int) (*Descriptor, error) {
	kind, err := f.kind(name)
	if err != nil {
		return nil, err
	}
	return f.FromKind(kind, quantity)
}

// Build creates a descriptor of the named kind and hands it to configure.
// The result is returned, and registered when the factory tracks, only if
// configure returns nil and no mutation error was recorded. A failed build
// leaves the registry untouched.
func (f *Factory) Build(name string, quantity int, configure func(*Descriptor) error) (*Descriptor, error) {
	kind, err := f.kind(name)
	if err != nil {
		return nil, err
	}
	d, err := f.create(kind, quantity)
	if err != nil {
		return nil, err
	}
	if configure != nil {
		if err := configure(d); err != nil {
			return nil, err
		}
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	f.adopt(d)
	return d, nil
}

func (f *Factory) kind(name string) (Kind, error) {
	kind, ok := f.platform.Kind(name)
	if !ok {
		return nil, invalidArgument("kind").With("kind", name).
			Wrapf(ErrInvalidArgument, "unknown kind %q", name)
	}
	return kind, nil
}

func (f *Factory) create(kind Kind, quantity int) (*Descriptor, error) {
	if kind == nil {
		return nil, invalidArgument("kind").Wrapf(ErrInvalidArgument, "kind is required")
	}
	if quantity < 1 {
		return nil, invalidArgument("quantity").With("quantity", quantity).
			Wrapf(ErrInvalidArgument, "quantity must be at least 1, got %d", quantity)
	}
	return f.newDescriptor(kind, quantity), nil
}

// FromArtifact creates a descriptor holding the current state of an existing artifact.
func (f *Factory) FromArtifact(a Artifact) (*Descriptor, error) {
	if a == nil {
		return nil, invalidArgument("artifact").Wrapf(ErrInvalidArgument, "artifact is required")
	}
	kind := a.Kind()
	if kind == nil {
		return nil, invalidArgument("kind").With("artifact_id", a.ID().String()).
			Wrapf(ErrInvalidArgument, "artifact has no kind")
	}
	if a.Quantity() < 1 {
		return nil, invalidArgument("quantity").With("artifact_id", a.ID().String()).With("quantity", a.Quantity()).
			Wrapf(ErrInvalidArgument, "artifact quantity must be at least 1, got %d", a.Quantity())
	}

	d := f.newDescriptor(kind, a.Quantity())
	meta := a.Meta()
	if meta != nil {
		if name, ok := meta.DisplayName(); ok {
			d.name, d.hasName = name, true
		}
		d.lore = slices.Clone(meta.Lore())
		for _, flag := range meta.Flags() {
			d.flags[flag] = struct{}{}
		}
		for kind, level := range meta.Modifiers() {
			if err := validateModifier(f.platform, kind, level); err != nil {
				return nil, oops.With("artifact_id", a.ID().String()).Wrap(err)
			}
			d.modifiers[kind] = level
		}
		if damage := meta.Damage(); damage != 0 {
			if damage < 0 || damage > maxDurability(kind) {
				return nil, invalidArgument("damage").With("artifact_id", a.ID().String()).
					With("damage", damage).With("max", maxDurability(kind)).
					Wrapf(ErrInvalidArgument, "artifact damage %d outside [0, %d]", damage, maxDurability(kind))
			}
			d.wear = damage
		}
		d.unbreakable = meta.Unbreakable()
		if tint, ok := meta.Tint(); ok && kind.SupportsTint() {
			d.tint = &tint
		}
	}
	f.adopt(d)
	return d, nil
}

func (f *Factory) newDescriptor(kind Kind, quantity int) *Descriptor {
	return &Descriptor{
		id:        NewID(),
		factory:   f,
		kind:      kind,
		quantity:  quantity,
		flags:     make(map[Flag]struct{}),
		modifiers: make(map[ModifierKind]int),
	}
}

// adopt registers d when the factory tracks by default.
func (f *Factory) adopt(d *Descriptor) {
	if f.track {
		d.MarkTracked()
	}
	f.logger.Debug("descriptor created",
		"descriptor_id", d.id.String(),
		"kind", d.kind.Name(),
		"quantity", d.quantity,
		"tracked", d.tracked,
	)
}
