// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the item catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := a.catalog
			fmt.Fprintf(cmd.OutOrStdout(), "catalog %s: %d kinds, %d flags, %d modifiers\n",
				cat.Version(), len(cat.Kinds()), len(cat.Flags()), len(cat.Modifiers()))
			return nil
		},
	}
	cmd.AddCommand(newCatalogKindsCmd(a))
	cmd.AddCommand(newCatalogFlagsCmd(a))
	cmd.AddCommand(newCatalogModifiersCmd(a))
	return cmd
}

func patternArg(args []string) string {
	if len(args) == 0 {
		return "*"
	}
	return args[0]
}

func newCatalogKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds [PATTERN]",
		Short: "List kinds matching a glob pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := a.catalog.MatchKinds(patternArg(args))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tNAME\tDURABILITY\tTINTABLE\tSTACK")
			for _, k := range kinds {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%t\t%d\n",
					k.Name(), k.DefaultName(), k.MaxDurability(), k.SupportsTint(), k.StackLimit())
			}
			return tw.Flush()
		},
	}
}

func newCatalogFlagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "flags [PATTERN]",
		Short: "List flags matching a glob pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := a.catalog.MatchFlags(patternArg(args))
			if err != nil {
				return err
			}
			for _, f := range flags {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

func newCatalogModifiersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "modifiers [PATTERN]",
		Short: "List modifier kinds matching a glob pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mods, err := a.catalog.MatchModifiers(patternArg(args))
			if err != nil {
				return err
			}
			for _, m := range mods {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
}
