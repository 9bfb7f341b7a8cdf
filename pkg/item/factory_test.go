// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package item_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/itemforge/pkg/errutil"
	"github.com/holomush/itemforge/pkg/item"
)

func TestNewFactory_NilPlatformPanics(t *testing.T) {
	assert.Panics(t, func() {
		item.NewFactory(nil)
	})
}

func TestFactory_TrackingOption(t *testing.T) {
	tests := []struct {
		name        string
		opts        []item.FactoryOption
		wantTracked bool
	}{
		{"untracked by default", nil, false},
		{"tracking enabled", []item.FactoryOption{item.WithTracking(true)}, true},
		{"tracking disabled", []item.FactoryOption{item.WithTracking(false)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFactory(t, tt.opts...)
			require.NotNil(t, f.Registry())
			assert.Equal(t, tt.wantTracked, f.Tracking())

			d := newDescriptor(t, f, "STONE", 1)
			assert.Equal(t, tt.wantTracked, d.Tracked())

			_, found := f.Registry().Lookup(materialize(t, d))
			assert.Equal(t, tt.wantTracked, found)
		})
	}
}

func TestFactory_ClonesAreUntracked(t *testing.T) {
	f := newFactory(t, item.WithTracking(true))
	d := newDescriptor(t, f, "STONE", 1)

	c := d.Clone()
	assert.False(t, c.Tracked())
	_, found := f.Registry().Lookup(materialize(t, c))
	assert.False(t, found)
}

func TestFactory_FromArtifactTracks(t *testing.T) {
	f := newFactory(t, item.WithTracking(true))
	src := newDescriptor(t, f, "APPLE", 4)

	d, err := f.FromArtifact(materialize(t, src))
	require.NoError(t, err)
	assert.True(t, d.Tracked())
	assert.Equal(t, 2, f.Registry().Len())
}

func TestFactory_Build(t *testing.T) {
	errConfigure := errors.New("configure failed")

	tests := []struct {
		name      string
		kind      string
		quantity  int
		configure func(*item.Descriptor) error
		wantErr   error
	}{
		{"unknown kind", "EXCALIBUR", 1, nil, item.ErrInvalidArgument},
		{"bad quantity", "STONE", 0, nil, item.ErrInvalidArgument},
		{
			"mutation error recorded",
			"DIAMOND_SWORD", 1,
			func(d *item.Descriptor) error {
				d.SetDisplayName("Excalibur").AddModifier("SHARPENSS", 5)
				return nil
			},
			item.ErrInvalidArgument,
		},
		{
			"configure error",
			"DIAMOND_SWORD", 1,
			func(d *item.Descriptor) error {
				d.SetDisplayName("Excalibur")
				return errConfigure
			},
			errConfigure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFactory(t, item.WithTracking(true))

			d, err := f.Build(tt.kind, tt.quantity, tt.configure)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.Registry().Len(), "failed build must not register")
		})
	}

	t.Run("success registers when tracking", func(t *testing.T) {
		f := newFactory(t, item.WithTracking(true))

		d, err := f.Build("DIAMOND_SWORD", 1, func(d *item.Descriptor) error {
			d.SetDisplayName("Excalibur").AddModifier("SHARPNESS", 5)
			return nil
		})
		require.NoError(t, err)
		assert.True(t, d.Tracked())
		assert.Equal(t, 1, f.Registry().Len())

		got, found := f.Registry().Lookup(materialize(t, d))
		require.True(t, found)
		assert.Equal(t, d.ID(), got.ID())
	})

	t.Run("mutation error carries code", func(t *testing.T) {
		f := newFactory(t)
		_, err := f.Build("DIAMOND_SWORD", 1, func(d *item.Descriptor) error {
			d.SetDurabilityUsed(-1)
			return nil
		})
		errutil.AssertErrorCode(t, err, item.CodeInvalidArgument)
	})
}

func TestParseID(t *testing.T) {
	id := item.NewID()
	parsed, err := item.ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = item.ParseID("not-a-ulid")
	assert.ErrorIs(t, err, item.ErrInvalidArgument)
}
