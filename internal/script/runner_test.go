// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package script_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/itemforge/internal/script"
	"github.com/holomush/itemforge/pkg/catalog"
	"github.com/holomush/itemforge/pkg/errutil"
	"github.com/holomush/itemforge/pkg/item"
	"github.com/holomush/itemforge/pkg/memhost"
)

func newRunner(t *testing.T, opts ...item.FactoryOption) (*script.Runner, *item.Factory) {
	t.Helper()
	cat := catalog.Default()
	fac := item.NewFactory(memhost.New(cat), opts...)
	return script.NewRunner(fac, cat, nil), fac
}

func TestRunner_BuildsDescriptors(t *testing.T) {
	r, _ := newRunner(t)

	ds, err := r.Run(context.Background(), "excalibur.lua", `
local sword = itemforge.new("DIAMOND_SWORD")
	:name("Excalibur")
	:color("gold")
	:lore("Legendary", "Forged in Avalon")
	:mod("SHARPNESS", 5)
	:flag("HIDE_ATTRIBUTES")
	:wear(10)
	:unbreakable()

local boots = itemforge.parse('LEATHER_BOOTS{tint:#a06540}'):remaining(60)

itemforge.give(sword, boots)
`)
	require.NoError(t, err)
	require.Len(t, ds, 2)

	sword := ds[0]
	name, _ := sword.DisplayName()
	assert.Equal(t, "Excalibur", name)
	assert.Equal(t, "gold", sword.NameColor())
	assert.Equal(t, []string{"Legendary", "Forged in Avalon"}, sword.LoreLines())
	level, ok := sword.Modifier("SHARPNESS")
	assert.True(t, ok)
	assert.Equal(t, 5, level)
	assert.True(t, sword.HasFlag("HIDE_ATTRIBUTES"))
	assert.Equal(t, 10, sword.DurabilityUsed())
	assert.True(t, sword.Unbreakable())

	assert.Equal(t, 60, ds[1].RemainingDurability())
}

func TestRunner_LoreIndicesAreOneBased(t *testing.T) {
	r, _ := newRunner(t)

	ds, err := r.Run(context.Background(), "lore.lua", `
local d = itemforge.new("PAPER"):lore("a", "c")
d:insert_lore(2, "b"):set_lore(1, "A"):add_lore("d"):remove_lore(4)
itemforge.give(d)
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "b", "c"}, ds[0].LoreLines())
}

func TestRunner_ErrorsAreCatchable(t *testing.T) {
	r, _ := newRunner(t)

	ds, err := r.Run(context.Background(), "recover.lua", `
local d = itemforge.new("STONE"):tint("#ff0000")
local msg = d:err()
assert(msg ~= nil and string.find(msg, "UNSUPPORTED_OPERATION"), "expected tint failure, got " .. tostring(msg))
d:clear_err():name("Pebble")
itemforge.give(d)
`)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	name, _ := ds[0].DisplayName()
	assert.Equal(t, "Pebble", name)
}

func TestRunner_Failures(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"syntax error", "itemforge.new(("},
		{"unknown kind", `itemforge.new("UNOBTAINIUM")`},
		{"give with recorded error", `itemforge.give(itemforge.new("BOW"):wear(9999))`},
		{"bad notation", `itemforge.parse("STONE{")`},
		{"give non descriptor", `itemforge.give("STONE")`},
		{"bad tint literal", `itemforge.new("POTION"):tint("red")`},
		{"give with unknown modifier", `itemforge.give(itemforge.new("DIAMOND_SWORD"):mod("SHARPENSS", 5))`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRunner(t)
			_, err := r.Run(context.Background(), "bad.lua", tt.code)
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, script.CodeScript)
			errutil.AssertErrorContext(t, err, "script", "bad.lua")
		})
	}
}

func TestRunner_Sandbox(t *testing.T) {
	blocked := []string{"os", "io", "debug", "package", "dofile", "loadfile", "loadstring", "load", "require"}

	for _, name := range blocked {
		t.Run(name, func(t *testing.T) {
			r, _ := newRunner(t)
			_, err := r.Run(context.Background(), "sandbox.lua",
				`assert(`+name+` == nil, "`+name+` should not be available")`)
			assert.NoError(t, err)
		})
	}
}

func TestRunner_ContextCancellation(t *testing.T) {
	r, _ := newRunner(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := r.Run(ctx, "spin.lua", `while true do end`)
	require.Error(t, err)
}

func TestRunner_TrackAndFlags(t *testing.T) {
	r, fac := newRunner(t)

	ds, err := r.Run(context.Background(), "track.lua", `
local hidden = itemforge.flags("HIDE_*")
assert(#hidden == 8)
local d = itemforge.new("SHIELD"):flag(unpack(hidden)):unflag("HIDE_DYE"):track()
local copy = d:clone()
assert(copy:notation() == d:notation())
itemforge.give(d, copy)
`)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.True(t, ds[0].Tracked())
	assert.False(t, ds[1].Tracked())
	assert.Len(t, ds[0].Flags(), 7)
	assert.Equal(t, 1, fac.Registry().Len())
}

func TestRunner_RunFile(t *testing.T) {
	r, _ := newRunner(t)
	path := filepath.Join(t.TempDir(), "apple.lua")
	require.NoError(t, os.WriteFile(path, []byte(`itemforge.give(itemforge.new("APPLE", 3))`), 0o600))

	ds, err := r.RunFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, 3, ds[0].Quantity())

	_, err = r.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}
