// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/itemforge/internal/notation"
	"github.com/holomush/itemforge/internal/recipe"
	"github.com/holomush/itemforge/pkg/item"
	"github.com/holomush/itemforge/pkg/memhost"
	"github.com/holomush/itemforge/pkg/textfmt"
)

// Output formats for commands that print descriptors.
const (
	formatText     = "text"
	formatNotation = "notation"
	formatYAML     = "yaml"
)

var outputFormats = []string{formatText, formatNotation, formatYAML}

type outputOptions struct {
	format string
	ansi   bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "output", "o", formatText,
		"output format ("+strings.Join(outputFormats, ", ")+")")
	cmd.Flags().BoolVar(&o.ansi, "ansi", false, "render item names and lore with ANSI colours")
}

func (o *outputOptions) validate() error {
	if !slices.Contains(outputFormats, o.format) {
		return oops.In("cli").With("output", o.format).
			Errorf("unknown output format %q (want one of %s)", o.format, strings.Join(outputFormats, ", "))
	}
	return nil
}

// emit prints descriptors in the chosen format. The text format
// materializes each descriptor and describes the resulting artifact.
func (o *outputOptions) emit(w io.Writer, ds []*item.Descriptor) error {
	switch o.format {
	case formatNotation:
		for _, d := range ds {
			if err := d.Err(); err != nil {
				return err
			}
			fmt.Fprintln(w, notation.Format(d))
		}
		return nil
	case formatYAML:
		data, err := recipe.Marshal("", ds...)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return oops.In("cli").Wrap(err)
	}

	for i, d := range ds {
		a, err := materialize(d)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		describeArtifact(w, a, o.ansi)
	}
	return nil
}

func materialize(d *item.Descriptor) (*memhost.Artifact, error) {
	a, err := d.Materialize()
	if err != nil {
		return nil, err
	}
	ma, ok := a.(*memhost.Artifact)
	if !ok {
		return nil, oops.In("cli").Errorf("unexpected artifact type %T", a)
	}
	return ma, nil
}

func render(s string, ansi bool) string {
	if ansi {
		return textfmt.Parse(s).ANSI()
	}
	return textfmt.Strip(s)
}

func describeArtifact(w io.Writer, a *memhost.Artifact, ansi bool) {
	meta := a.Snapshot()
	kind := a.CatalogKind()

	fmt.Fprintf(w, "%s x%d  %s\n", kind.Name(), a.Quantity(), render(a.DisplayName(), ansi))
	fmt.Fprintf(w, "  artifact: %s\n", a.ID())
	if origin, ok := meta.Tag(item.OriginTag); ok {
		fmt.Fprintf(w, "  origin:   %s\n", origin)
	}
	for _, line := range meta.Lore() {
		fmt.Fprintf(w, "  | %s\n", render(line, ansi))
	}
	if flags := meta.Flags(); len(flags) > 0 {
		names := make([]string, len(flags))
		for i, f := range flags {
			names[i] = string(f)
		}
		fmt.Fprintf(w, "  flags:    %s\n", strings.Join(names, " "))
	}
	if mods := meta.Modifiers(); len(mods) > 0 {
		parts := make([]string, 0, len(mods))
		for _, k := range slices.Sorted(maps.Keys(mods)) {
			parts = append(parts, fmt.Sprintf("%s %d", k, mods[k]))
		}
		fmt.Fprintf(w, "  mods:     %s\n", strings.Join(parts, ", "))
	}
	if kind.SupportsDurability() {
		line := fmt.Sprintf("%d/%d", kind.MaxDurability()-meta.Damage(), kind.MaxDurability())
		if meta.Unbreakable() {
			line += " (unbreakable)"
		}
		fmt.Fprintf(w, "  durability: %s\n", line)
	} else if meta.Unbreakable() {
		fmt.Fprintln(w, "  unbreakable")
	}
	if tint, ok := meta.Tint(); ok {
		fmt.Fprintf(w, "  tint:     %s\n", textfmt.HexColor(tint))
	}
}
