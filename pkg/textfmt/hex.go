// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package textfmt

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"github.com/samber/oops"
)

// ParseHexColor reads an opaque RGB colour written as "#rrggbb" or "rrggbb".
func ParseHexColor(s string) (color.NRGBA, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 {
		return color.NRGBA{}, oops.In("textfmt").With("color", s).Errorf("colour must be #rrggbb, got %q", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return color.NRGBA{}, oops.In("textfmt").With("color", s).Wrapf(err, "colour must be #rrggbb")
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
}

// HexColor formats c as "#rrggbb". Alpha is dropped.
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
