// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package notation

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/samber/oops"

	"github.com/holomush/itemforge/internal/recipe"
	"github.com/holomush/itemforge/pkg/catalog"
	"github.com/holomush/itemforge/pkg/item"
	"github.com/holomush/itemforge/pkg/textfmt"
)

// CodeSyntax marks notation that does not parse.
const CodeSyntax = "NOTATION_SYNTAX"

var parser *participle.Parser[Item]

func init() {
	var err error
	parser, err = newParser()
	if err != nil {
		panic(fmt.Sprintf("failed to build notation parser: %v", err))
	}
}

// Parse parses one item.
func Parse(text string) (*Item, error) {
	it, err := parser.ParseString("", text)
	if err != nil {
		b := oops.In("notation").Code(CodeSyntax).With("input", text)
		var perr participle.Error
		if errors.As(err, &perr) {
			b = b.With("line", perr.Position().Line).With("column", perr.Position().Column)
		}
		return nil, b.Wrapf(err, "parse item notation")
	}

	seen := make(map[string]bool, len(it.Props))
	for _, p := range it.Props {
		k := p.key()
		if seen[k] {
			return nil, oops.In("notation").Code(CodeSyntax).With("input", text).With("property", k).
				Errorf("property %s given twice", k)
		}
		seen[k] = true
	}
	return it, nil
}

// Entry converts the parsed item to a recipe entry.
func (it *Item) Entry() recipe.Entry {
	e := recipe.Entry{Kind: it.Kind}
	if it.Quantity != nil {
		e.Quantity = *it.Quantity
	}
	for _, p := range it.Props {
		switch {
		case p.Name != nil:
			e.Name = *p.Name
		case p.Color != nil:
			e.NameColor = *p.Color
		case p.Lore != nil:
			e.Lore = slices.Clone(p.Lore.Values)
		case p.Flags != nil:
			e.Flags = slices.Clone(p.Flags.Values)
		case p.Mods != nil:
			e.Modifiers = make(map[string]int, len(p.Mods.Entries))
			for _, m := range p.Mods.Entries {
				e.Modifiers[m.Kind] = m.Level
			}
		case p.Wear != nil:
			wear := *p.Wear
			e.DurabilityUsed = &wear
		case p.Remaining != nil:
			remaining := *p.Remaining
			e.RemainingDurability = &remaining
		case p.Unbreakable != nil:
			e.Unbreakable = *p.Unbreakable == "true"
		case p.Tint != nil:
			e.Tint = *p.Tint
		}
	}
	return e
}

// Build parses text and builds the descriptor it describes.
func Build(text string, fac *item.Factory, cat *catalog.Catalog) (*item.Descriptor, error) {
	it, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if it.Quantity != nil && *it.Quantity == 0 {
		return nil, oops.In("notation").Code(item.CodeInvalidArgument).With("input", text).
			Wrapf(item.ErrInvalidArgument, "quantity must be at least 1")
	}
	d, err := it.Entry().Build(fac, cat)
	if err != nil {
		return nil, oops.In("notation").With("input", text).Wrap(err)
	}
	return d, nil
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Format prints d in item notation. Parsing the result and building it
// yields a descriptor Equal to d.
func Format(d *item.Descriptor) string {
	var b strings.Builder
	b.WriteString(d.Kind().Name())
	if d.Quantity() != 1 {
		fmt.Fprintf(&b, "*%d", d.Quantity())
	}

	var props []string
	if name, ok := d.DisplayName(); ok {
		props = append(props, "name:"+strconv.Quote(name))
	}
	if c := d.NameColor(); c != "" {
		props = append(props, "color:"+strconv.Quote(c))
	}
	if lore := d.LoreLines(); len(lore) > 0 {
		quoted := make([]string, len(lore))
		for i, line := range lore {
			quoted[i] = strconv.Quote(line)
		}
		props = append(props, "lore:["+strings.Join(quoted, ",")+"]")
	}
	if flags := d.Flags(); len(flags) > 0 {
		out := make([]string, len(flags))
		for i, f := range flags {
			out[i] = ident(string(f))
		}
		props = append(props, "flags:["+strings.Join(out, ",")+"]")
	}
	if mods := d.Modifiers(); len(mods) > 0 {
		var out []string
		for _, k := range slices.Sorted(maps.Keys(mods)) {
			out = append(out, fmt.Sprintf("%s:%d", k, mods[k]))
		}
		props = append(props, "mods:{"+strings.Join(out, ",")+"}")
	}
	if wear := d.DurabilityUsed(); wear > 0 {
		props = append(props, fmt.Sprintf("wear:%d", wear))
	}
	if d.Unbreakable() {
		props = append(props, "unbreakable:true")
	}
	if tint, ok := d.Tint(); ok {
		props = append(props, "tint:"+textfmt.HexColor(tint))
	}

	if len(props) > 0 {
		b.WriteString("{")
		b.WriteString(strings.Join(props, ","))
		b.WriteString("}")
	}
	return b.String()
}

func ident(s string) string {
	if identPattern.MatchString(s) {
		return s
	}
	return strconv.Quote(s)
}
