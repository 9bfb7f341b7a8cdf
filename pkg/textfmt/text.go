// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package textfmt builds and renders styled item text.
//
// StyledText is an intermediate form that renders to legacy section-sign
// codes (what game clients read), ANSI escapes (terminals), or plain text.
package textfmt

import "strings"

// StyledText is text made of styled segments.
type StyledText struct {
	segments []segment
}

type segment struct {
	text  string
	style style
}

type style struct {
	bold          bool
	italic        bool
	underline     bool
	strikethrough bool
	obfuscated    bool
	color         *Color
}

func (s style) plain() bool {
	return s == style{}
}

// PlainText creates unstyled text.
func PlainText(text string) StyledText {
	return StyledText{segments: []segment{{text: text}}}
}

// Colored creates text in one colour.
func Colored(c Color, text string) StyledText {
	return StyledText{segments: []segment{{text: text, style: style{color: &c}}}}
}

// Bold creates bold text.
func Bold(text string) StyledText {
	return StyledText{segments: []segment{{text: text, style: style{bold: true}}}}
}

// Italic creates italic text.
func Italic(text string) StyledText {
	return StyledText{segments: []segment{{text: text, style: style{italic: true}}}}
}

// Append combines two StyledText values.
func (st StyledText) Append(other StyledText) StyledText {
	segs := make([]segment, 0, len(st.segments)+len(other.segments))
	segs = append(segs, st.segments...)
	return StyledText{segments: append(segs, other.segments...)}
}

// AppendText appends plain text.
func (st StyledText) AppendText(text string) StyledText {
	return st.Append(PlainText(text))
}

// Legacy renders section-sign codes. Every styled segment restates its full
// style, so segments can be reordered without leaking formatting.
func (st StyledText) Legacy() string {
	var b strings.Builder
	styled := false
	for _, seg := range st.segments {
		if seg.style.plain() {
			if styled {
				b.WriteRune(SectionSign)
				b.WriteRune('r')
				styled = false
			}
			b.WriteString(seg.text)
			continue
		}
		if styled && seg.style.color == nil {
			// A colour code resets formats; without one, reset explicitly.
			b.WriteRune(SectionSign)
			b.WriteRune('r')
		}
		if seg.style.color != nil {
			b.WriteRune(SectionSign)
			b.WriteRune(seg.style.color.Code)
		}
		writeFormatCodes(&b, seg.style)
		b.WriteString(seg.text)
		styled = true
	}
	return b.String()
}

func writeFormatCodes(b *strings.Builder, s style) {
	codes := []struct {
		on   bool
		code rune
	}{
		{s.obfuscated, 'k'},
		{s.bold, 'l'},
		{s.strikethrough, 'm'},
		{s.underline, 'n'},
		{s.italic, 'o'},
	}
	for _, c := range codes {
		if c.on {
			b.WriteRune(SectionSign)
			b.WriteRune(c.code)
		}
	}
}

// ANSI renders ANSI escape codes for terminals.
func (st StyledText) ANSI() string {
	var b strings.Builder
	for _, seg := range st.segments {
		if seg.style.plain() {
			b.WriteString(seg.text)
			continue
		}
		if seg.style.bold {
			b.WriteString(ansiBold)
		}
		if seg.style.italic {
			b.WriteString(ansiItalic)
		}
		if seg.style.underline {
			b.WriteString(ansiUnderline)
		}
		if seg.style.strikethrough {
			b.WriteString(ansiStrikethrough)
		}
		if seg.style.color != nil {
			b.WriteString(seg.style.color.ansi)
		}
		b.WriteString(seg.text)
		b.WriteString(ansiReset)
	}
	return b.String()
}

// Plain renders the text without any styling.
func (st StyledText) Plain() string {
	var b strings.Builder
	for _, seg := range st.segments {
		b.WriteString(seg.text)
	}
	return b.String()
}

// Parse reads text containing section-sign codes.
func Parse(s string) StyledText {
	return ParseAlternate(s, SectionSign)
}

// ParseAlternate reads text whose formatting codes are introduced by prefix,
// such as '&' in user-typed text. Unknown codes are kept as literal text.
func ParseAlternate(s string, prefix rune) StyledText {
	var (
		st  StyledText
		cur style
		buf strings.Builder
	)
	flush := func() {
		if buf.Len() > 0 {
			st.segments = append(st.segments, segment{text: buf.String(), style: cur})
			buf.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != prefix || i+1 >= len(runes) {
			buf.WriteRune(r)
			continue
		}
		code := toLowerASCII(runes[i+1])
		next, ok := applyCode(cur, code)
		if !ok {
			buf.WriteRune(r)
			continue
		}
		flush()
		cur = next
		i++
	}
	flush()
	return st
}

func applyCode(s style, code rune) (style, bool) {
	if c, ok := colorByCode(code); ok {
		return style{color: &c}, true
	}
	switch code {
	case 'k':
		s.obfuscated = true
	case 'l':
		s.bold = true
	case 'm':
		s.strikethrough = true
	case 'n':
		s.underline = true
	case 'o':
		s.italic = true
	case 'r':
		s = style{}
	default:
		return s, false
	}
	return s, true
}

// Strip removes section-sign codes from s.
func Strip(s string) string {
	return Parse(s).Plain()
}

// Translate rewrites codes introduced by prefix into section-sign codes.
func Translate(s string, prefix rune) string {
	return ParseAlternate(s, prefix).Legacy()
}
