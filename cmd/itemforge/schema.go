// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holomush/itemforge/internal/recipe"
	"github.com/holomush/itemforge/pkg/catalog"
)

var schemaGenerators = map[string]func() ([]byte, error){
	"catalog": catalog.GenerateSchema,
	"recipe":  recipe.GenerateSchema,
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema catalog|recipe",
		Short:     "Print a JSON Schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"catalog", "recipe"},
		// Schemas need no config or catalog.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := schemaGenerators[args[0]]()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
