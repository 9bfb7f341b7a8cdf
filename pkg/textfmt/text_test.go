// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package textfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/itemforge/pkg/textfmt"
)

func mustColor(t *testing.T, token string) textfmt.Color {
	t.Helper()
	c, ok := textfmt.LookupColor(token)
	require.True(t, ok, "unknown colour %q", token)
	return c
}

func TestStyledText_Legacy(t *testing.T) {
	red := mustColor(t, "red")

	tests := []struct {
		name string
		text textfmt.StyledText
		want string
	}{
		{"plain", textfmt.PlainText("Excalibur"), "Excalibur"},
		{"colored", textfmt.Colored(red, "Excalibur"), "§cExcalibur"},
		{"bold", textfmt.Bold("Excalibur"), "§lExcalibur"},
		{"italic", textfmt.Italic("lore"), "§olore"},
		{"colored then plain", textfmt.Colored(red, "a").AppendText("b"), "§ca§rb"},
		{"colored then bold", textfmt.Colored(red, "a").Append(textfmt.Bold("b")), "§ca§r§lb"},
		{"plain then colored", textfmt.PlainText("a").Append(textfmt.Colored(red, "b")), "a§cb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.text.Legacy())
		})
	}
}

func TestStyledText_ANSI(t *testing.T) {
	red := mustColor(t, "red")

	assert.Equal(t, "plain", textfmt.PlainText("plain").ANSI())
	assert.Equal(t, "\x1b[91mred\x1b[0m", textfmt.Colored(red, "red").ANSI())
	assert.Equal(t, "\x1b[1mbold\x1b[0m", textfmt.Bold("bold").ANSI())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantPlain  string
		wantLegacy string
	}{
		{"no codes", "Excalibur", "Excalibur", "Excalibur"},
		{"colour", "§6Excalibur", "Excalibur", "§6Excalibur"},
		{"colour and bold", "§6§lExcalibur", "Excalibur", "§6§lExcalibur"},
		{"reset", "§cred§rplain", "redplain", "§cred§rplain"},
		{"unknown code kept", "§zodd", "§zodd", "§zodd"},
		{"trailing prefix kept", "end§", "end§", "end§"},
		{"upper case code", "§CRed", "Red", "§cRed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := textfmt.Parse(tt.input)
			assert.Equal(t, tt.wantPlain, st.Plain())
			assert.Equal(t, tt.wantLegacy, st.Legacy())
		})
	}
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "§6§lGold", textfmt.Translate("&6&lGold", '&'))
	assert.Equal(t, "Fish & Chips", textfmt.Translate("Fish & Chips", '&'))
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "Excalibur", textfmt.Strip("§6§lExcal§ribur"))
}

func TestLookupColor(t *testing.T) {
	tests := []struct {
		token    string
		wantName string
		wantOK   bool
	}{
		{"red", "red", true},
		{"DARK_RED", "dark_red", true},
		{"c", "red", true},
		{"§6", "gold", true},
		{"&a", "green", true},
		{" gold ", "gold", true},
		{"", "", false},
		{"crimson", "", false},
		{"z", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			c, ok := textfmt.LookupColor(tt.token)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, c.Name)
		})
	}
}

func TestColors_Palette(t *testing.T) {
	require.Len(t, textfmt.Colors, 16)
	seen := make(map[rune]bool)
	for _, c := range textfmt.Colors {
		assert.False(t, seen[c.Code], "duplicate code %c", c.Code)
		seen[c.Code] = true
	}
}
