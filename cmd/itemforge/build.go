// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/itemforge/internal/notation"
	"github.com/holomush/itemforge/internal/recipe"
	"github.com/holomush/itemforge/internal/script"
	"github.com/holomush/itemforge/pkg/errutil"
	"github.com/holomush/itemforge/pkg/item"
)

func newBuildCmd(a *app) *cobra.Command {
	out := &outputOptions{}
	cmd := &cobra.Command{
		Use:   "build NOTATION...",
		Short: "Build items from notation",
		Long: `Build items from one-line notation and print them.

  itemforge build 'DIAMOND_SWORD{name:"Excalibur",color:gold,mods:{SHARPNESS:5}}'
  itemforge build 'ARROW*16' -o yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			ds := make([]*item.Descriptor, 0, len(args))
			for _, text := range args {
				d, err := notation.Build(text, a.factory, a.catalog)
				if err != nil {
					return err
				}
				ds = append(ds, d)
			}
			return out.emit(cmd.OutOrStdout(), ds)
		},
	}
	out.register(cmd)
	return cmd
}

func newGiveCmd(a *app) *cobra.Command {
	out := &outputOptions{}
	cmd := &cobra.Command{
		Use:   "give RECIPE",
		Short: "Build the items in a recipe file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			f, err := recipe.Load(args[0])
			if err != nil {
				return err
			}
			ds, err := f.Build(a.factory, a.catalog)
			if err != nil {
				errutil.LogError(a.logger, "recipe build failed", err)
				return err
			}
			a.logger.Info("recipe built", "path", args[0], "items", len(ds))
			return out.emit(cmd.OutOrStdout(), ds)
		},
	}
	out.register(cmd)
	return cmd
}

func newScriptCmd(a *app) *cobra.Command {
	out := &outputOptions{}
	cmd := &cobra.Command{
		Use:   "script FILE",
		Short: "Run a Lua item script",
		Long: `Run a Lua script and print the items it gives.

Scripts build descriptors through the itemforge table:

  local sword = itemforge.new("DIAMOND_SWORD"):name("Excalibur"):mod("SHARPNESS", 5)
  itemforge.give(sword)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			runner := script.NewRunner(a.factory, a.catalog, a.logger)
			ds, err := runner.RunFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return out.emit(cmd.OutOrStdout(), ds)
		},
	}
	out.register(cmd)
	return cmd
}
