// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//nolint:gocritic // captLocal: L is the idiomatic name for lua.LState
package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/holomush/itemforge/internal/notation"
	"github.com/holomush/itemforge/pkg/errutil"
	"github.com/holomush/itemforge/pkg/item"
	"github.com/holomush/itemforge/pkg/textfmt"
)

const descriptorType = "itemforge.descriptor"

// run is the per-execution API state.
type run struct {
	r     *Runner
	name  string
	given []*item.Descriptor
}

func (x *run) register(L *lua.LState) {
	mt := L.NewTypeMetatable(descriptorType)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), x.methods()))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(check(L, 1).String()))
		return 1
	}))

	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"new":   x.newFn,
		"parse": x.parseFn,
		"give":  x.giveFn,
		"flags": x.flagsFn,
		"log":   x.logFn,
	})
	L.SetGlobal("itemforge", mod)
}

func (x *run) push(L *lua.LState, d *item.Descriptor) {
	ud := L.NewUserData()
	ud.Value = d
	L.SetMetatable(ud, L.GetTypeMetatable(descriptorType))
	L.Push(ud)
}

func check(L *lua.LState, n int) *item.Descriptor {
	ud := L.CheckUserData(n)
	d, ok := ud.Value.(*item.Descriptor)
	if !ok {
		L.ArgError(n, "descriptor expected")
		return nil
	}
	return d
}

// raise turns err into a Lua error carrying its code.
func raise(L *lua.LState, err error) int {
	L.RaiseError("%s", errutil.Describe(err))
	return 0
}

// itemforge.new(kind [, quantity])
func (x *run) newFn(L *lua.LState) int {
	kind := L.CheckString(1)
	qty := L.OptInt(2, 1)
	d, err := x.r.factory.FromKindName(kind, qty)
	if err != nil {
		return raise(L, err)
	}
	x.push(L, d)
	return 1
}

// itemforge.parse(notation)
func (x *run) parseFn(L *lua.LState) int {
	d, err := notation.Build(L.CheckString(1), x.r.factory, x.r.catalog)
	if err != nil {
		return raise(L, err)
	}
	x.push(L, d)
	return 1
}

// itemforge.give(descriptor...) collects descriptors as script output.
func (x *run) giveFn(L *lua.LState) int {
	for i := 1; i <= L.GetTop(); i++ {
		d := check(L, i)
		if err := d.Err(); err != nil {
			return raise(L, err)
		}
		x.given = append(x.given, d)
	}
	return 0
}

// itemforge.flags(pattern) returns the catalog flags matching pattern.
func (x *run) flagsFn(L *lua.LState) int {
	flags, err := x.r.catalog.MatchFlags(L.CheckString(1))
	if err != nil {
		return raise(L, err)
	}
	t := L.CreateTable(len(flags), 0)
	for _, f := range flags {
		t.Append(lua.LString(f))
	}
	L.Push(t)
	return 1
}

// itemforge.log(message)
func (x *run) logFn(L *lua.LState) int {
	x.r.logger.Info(L.CheckString(1), "script", x.name)
	return 0
}

// chain wraps a mutator so Lua sees the descriptor returned for chaining.
func chain(fn func(L *lua.LState, d *item.Descriptor)) lua.LGFunction {
	return func(L *lua.LState) int {
		d := check(L, 1)
		fn(L, d)
		L.Push(L.Get(1))
		return 1
	}
}

func stringArgs(L *lua.LState, from int) []string {
	out := make([]string, 0, L.GetTop()-from+1)
	for i := from; i <= L.GetTop(); i++ {
		out = append(out, L.CheckString(i))
	}
	return out
}

func (x *run) methods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"name": chain(func(L *lua.LState, d *item.Descriptor) {
			d.SetDisplayName(L.CheckString(2))
		}),
		"color": chain(func(L *lua.LState, d *item.Descriptor) {
			d.ColorName(L.CheckString(2))
		}),
		"quantity": chain(func(L *lua.LState, d *item.Descriptor) {
			d.SetQuantity(L.CheckInt(2))
		}),
		"kind": chain(func(L *lua.LState, d *item.Descriptor) {
			name := L.CheckString(2)
			k, ok := x.r.factory.Platform().Kind(name)
			if !ok {
				L.ArgError(2, "unknown kind "+name)
				return
			}
			d.SetKind(k)
		}),
		"lore": chain(func(L *lua.LState, d *item.Descriptor) {
			d.Lore().Set(stringArgs(L, 2)...)
		}),
		"add_lore": chain(func(L *lua.LState, d *item.Descriptor) {
			d.Lore().Append(stringArgs(L, 2)...)
		}),
		// Lua indices are 1-based.
		"insert_lore": chain(func(L *lua.LState, d *item.Descriptor) {
			d.InsertLoreLine(L.CheckInt(2)-1, L.CheckString(3), false)
		}),
		"set_lore": chain(func(L *lua.LState, d *item.Descriptor) {
			d.InsertLoreLine(L.CheckInt(2)-1, L.CheckString(3), true)
		}),
		"remove_lore": chain(func(L *lua.LState, d *item.Descriptor) {
			switch v := L.CheckAny(2).(type) {
			case lua.LNumber:
				d.RemoveLoreLineAt(int(v) - 1)
			default:
				d.Lore().Remove(stringArgs(L, 2)...)
			}
		}),
		"clear_lore": chain(func(_ *lua.LState, d *item.Descriptor) {
			d.ClearLore()
		}),
		"flag": chain(func(L *lua.LState, d *item.Descriptor) {
			d.AddFlags(toFlags(stringArgs(L, 2))...)
		}),
		"unflag": chain(func(L *lua.LState, d *item.Descriptor) {
			d.RemoveFlags(toFlags(stringArgs(L, 2))...)
		}),
		"all_flags": chain(func(_ *lua.LState, d *item.Descriptor) {
			d.AllFlags()
		}),
		"no_flags": chain(func(_ *lua.LState, d *item.Descriptor) {
			d.NoFlags()
		}),
		"mod": chain(func(L *lua.LState, d *item.Descriptor) {
			d.AddModifier(item.ModifierKind(L.CheckString(2)), L.CheckInt(3))
		}),
		"unmod": chain(func(L *lua.LState, d *item.Descriptor) {
			kinds := stringArgs(L, 2)
			mods := make([]item.ModifierKind, len(kinds))
			for i, k := range kinds {
				mods[i] = item.ModifierKind(k)
			}
			d.RemoveModifier(mods...)
		}),
		"wear": chain(func(L *lua.LState, d *item.Descriptor) {
			d.SetDurabilityUsed(L.CheckInt(2))
		}),
		"remaining": chain(func(L *lua.LState, d *item.Descriptor) {
			d.SetRemainingDurability(L.CheckInt(2))
		}),
		"damage": chain(func(L *lua.LState, d *item.Descriptor) {
			d.DamageBy(L.CheckInt(2))
		}),
		"unbreakable": chain(func(L *lua.LState, d *item.Descriptor) {
			d.SetUnbreakable(L.OptBool(2, true))
		}),
		"tint": chain(func(L *lua.LState, d *item.Descriptor) {
			c, err := textfmt.ParseHexColor(L.CheckString(2))
			if err != nil {
				L.ArgError(2, err.Error())
				return
			}
			d.SetTint(c)
		}),
		"track": chain(func(_ *lua.LState, d *item.Descriptor) {
			d.MarkTracked()
		}),
		"clone": func(L *lua.LState) int {
			x.push(L, check(L, 1).Clone())
			return 1
		},
		"notation": func(L *lua.LState) int {
			L.Push(lua.LString(notation.Format(check(L, 1))))
			return 1
		},
		// err returns the recorded error message, or nil.
		"err": func(L *lua.LState) int {
			if err := check(L, 1).Err(); err != nil {
				L.Push(lua.LString(errutil.Describe(err)))
				return 1
			}
			L.Push(lua.LNil)
			return 1
		},
		"clear_err": chain(func(_ *lua.LState, d *item.Descriptor) {
			d.ClearErr()
		}),
		"durability": func(L *lua.LState) int {
			d := check(L, 1)
			L.Push(lua.LNumber(d.DurabilityUsed()))
			L.Push(lua.LNumber(d.RemainingDurability()))
			return 2
		},
	}
}

func toFlags(names []string) []item.Flag {
	out := make([]item.Flag, len(names))
	for i, n := range names {
		out[i] = item.Flag(n)
	}
	return out
}
