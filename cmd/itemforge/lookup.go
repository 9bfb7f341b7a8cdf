// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/itemforge/internal/notation"
	"github.com/holomush/itemforge/pkg/errutil"
)

func newLookupCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "lookup NOTATION...",
		Short: "Materialize items and trace them back to their descriptors",
		Long: `Build and materialize each item, then resolve the artifact through the
registry. Untracked descriptors are not found unless tracking is on.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			misses := 0
			for _, text := range args {
				d, err := notation.Build(text, a.factory, a.catalog)
				if err != nil {
					return err
				}
				art, err := materialize(d)
				if err != nil {
					return err
				}
				found, err := a.registry.Resolve(art)
				if err != nil {
					misses++
					a.logger.Debug("lookup missed",
						"artifact_id", art.ID().String(),
						"code", errutil.Code(err))
					fmt.Fprintf(w, "%s  miss  %s\n", art.ID(), errutil.Describe(err))
					continue
				}
				fmt.Fprintf(w, "%s  hit   %s  %s\n", art.ID(), found.ID(), notation.Format(found))
			}
			if strict && misses > 0 {
				return oops.In("cli").With("misses", misses).Errorf("%d of %d lookups missed", misses, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any lookup misses")
	return cmd
}
