// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package textfmt

import "strings"

// SectionSign introduces a legacy formatting code.
const SectionSign = '§'

// Color is one of the sixteen legacy text colours.
type Color struct {
	Name string
	Code rune
	ansi string
}

// ANSI escape codes
const (
	ansiReset         = "\x1b[0m"
	ansiBold          = "\x1b[1m"
	ansiItalic        = "\x1b[3m"
	ansiUnderline     = "\x1b[4m"
	ansiStrikethrough = "\x1b[9m"
)

// Colors lists the legacy palette in code order.
var Colors = []Color{
	{"black", '0', "\x1b[30m"},
	{"dark_blue", '1', "\x1b[34m"},
	{"dark_green", '2', "\x1b[32m"},
	{"dark_aqua", '3', "\x1b[36m"},
	{"dark_red", '4', "\x1b[31m"},
	{"dark_purple", '5', "\x1b[35m"},
	{"gold", '6', "\x1b[33m"},
	{"gray", '7', "\x1b[37m"},
	{"dark_gray", '8', "\x1b[90m"},
	{"blue", '9', "\x1b[94m"},
	{"green", 'a', "\x1b[92m"},
	{"aqua", 'b', "\x1b[96m"},
	{"red", 'c', "\x1b[91m"},
	{"light_purple", 'd', "\x1b[95m"},
	{"yellow", 'e', "\x1b[93m"},
	{"white", 'f', "\x1b[97m"},
}

// LookupColor resolves a colour token. Accepted forms are a palette name in
// any case ("red", "DARK_RED"), a bare code character ("c"), or a code with
// its prefix ("§c", "&c").
func LookupColor(token string) (Color, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return Color{}, false
	}
	runes := []rune(t)
	if len(runes) == 2 && (runes[0] == SectionSign || runes[0] == '&') {
		runes = runes[1:]
	}
	if len(runes) == 1 {
		return colorByCode(runes[0])
	}
	for _, c := range Colors {
		if c.Name == t {
			return c, true
		}
	}
	return Color{}, false
}

func colorByCode(code rune) (Color, bool) {
	code = toLowerASCII(code)
	for _, c := range Colors {
		if c.Code == code {
			return c, true
		}
	}
	return Color{}, false
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
