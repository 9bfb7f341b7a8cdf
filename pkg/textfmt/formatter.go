// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package textfmt

import "github.com/holomush/itemforge/pkg/item"

// Compile-time interface check.
var _ item.Formatter = Formatter{}

// Formatter renders item text to legacy codes.
type Formatter struct {
	// Alternate, when non-zero, is translated to section-sign codes inside
	// the text before styling, e.g. '&' for "&lBold".
	Alternate rune
}

// Style colours text with token. Unknown or empty tokens leave the colour
// unset; alternate codes inside text are still translated.
func (f Formatter) Style(text, token string) string {
	st := PlainText(text)
	if f.Alternate != 0 {
		st = ParseAlternate(text, f.Alternate)
	}
	c, ok := LookupColor(token)
	if !ok {
		return st.Legacy()
	}
	return tint(st, c).Legacy()
}

// tint colours every segment that has no colour of its own.
func tint(st StyledText, c Color) StyledText {
	out := StyledText{segments: make([]segment, len(st.segments))}
	for i, seg := range st.segments {
		if seg.style.color == nil {
			seg.style.color = &c
		}
		out.segments[i] = seg
	}
	return out
}
