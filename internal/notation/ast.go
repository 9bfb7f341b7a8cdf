// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package notation parses and prints the one-line item notation:
//
//	DIAMOND_SWORD*1{name:"Excalibur",color:"gold",lore:["Legendary"],
//	  flags:[HIDE_ATTRIBUTES,"HIDE_D*"],mods:{SHARPNESS:5},wear:10,
//	  unbreakable:true,tint:#a06540}
//
// The quantity and the property block are optional. Flag patterns that
// contain wildcards must be quoted.
package notation

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var itemLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Hex", Pattern: `#[0-9a-fA-F]{6}`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[*{}\[\]:,]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Item is one parsed item.
//
// Grammar: kind [ "*" quantity ] [ "{" prop { "," prop } "}" ]
type Item struct {
	Pos      lexer.Position `parser:""`
	Kind     string         `parser:"@Ident"`
	Quantity *int           `parser:"('*' @Int)?"`
	Props    []*Prop        `parser:"('{' (@@ (',' @@)*)? '}')?"`
}

// Prop is one key:value pair of the property block.
type Prop struct {
	Pos         lexer.Position `parser:""`
	Name        *string        `parser:"  'name' ':' @String"`
	Color       *string        `parser:"| 'color' ':' @(String | Ident)"`
	Lore        *List          `parser:"| 'lore' ':' @@"`
	Flags       *List          `parser:"| 'flags' ':' @@"`
	Mods        *Mods          `parser:"| 'mods' ':' @@"`
	Wear        *int           `parser:"| 'wear' ':' @Int"`
	Remaining   *int           `parser:"| 'remaining' ':' @Int"`
	Unbreakable *string        `parser:"| 'unbreakable' ':' @('true' | 'false')"`
	Tint        *string        `parser:"| 'tint' ':' @Hex"`
}

// key names the property for duplicate detection.
func (p *Prop) key() string {
	switch {
	case p.Name != nil:
		return "name"
	case p.Color != nil:
		return "color"
	case p.Lore != nil:
		return "lore"
	case p.Flags != nil:
		return "flags"
	case p.Mods != nil:
		return "mods"
	case p.Wear != nil, p.Remaining != nil:
		return "durability"
	case p.Unbreakable != nil:
		return "unbreakable"
	case p.Tint != nil:
		return "tint"
	}
	return ""
}

// List is a bracketed list of strings or identifiers.
type List struct {
	Values []string `parser:"'[' ((@String | @Ident) (',' (@String | @Ident))*)? ']'"`
}

// Mods is a braced modifier map.
type Mods struct {
	Entries []*ModEntry `parser:"'{' (@@ (',' @@)*)? '}'"`
}

// ModEntry is one modifier level.
type ModEntry struct {
	Kind  string `parser:"@Ident ':'"`
	Level int    `parser:"@Int"`
}

func newParser() (*participle.Parser[Item], error) {
	return participle.Build[Item](
		participle.Lexer(itemLexer),
		participle.Unquote("String"),
	)
}
