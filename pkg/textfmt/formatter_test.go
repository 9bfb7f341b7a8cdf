// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package textfmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/holomush/itemforge/pkg/textfmt"
)

func TestFormatter_Style(t *testing.T) {
	tests := []struct {
		name      string
		alternate rune
		text      string
		token     string
		want      string
	}{
		{"named colour", 0, "Excalibur", "gold", "§6Excalibur"},
		{"code colour", 0, "Excalibur", "&6", "§6Excalibur"},
		{"unknown colour is plain", 0, "Excalibur", "crimson", "Excalibur"},
		{"no colour", 0, "Excalibur", "", "Excalibur"},
		{"alternate codes translated", '&', "&lExcalibur", "", "§lExcalibur"},
		{"alternate codes tinted", '&', "&lExcalibur", "gold", "§6§lExcalibur"},
		{"inline colour wins", '&', "Plain &cRed", "gold", "§6Plain §cRed"},
		{"inline colour carries into format", '&', "&cRed &lBold", "gold", "§cRed §c§lBold"},
		{"alternate off keeps ampersand", 0, "&lExcalibur", "", "&lExcalibur"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := textfmt.Formatter{Alternate: tt.alternate}
			assert.Equal(t, tt.want, f.Style(tt.text, tt.token))
		})
	}
}
