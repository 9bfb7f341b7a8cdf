// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/itemforge/internal/config"
	"github.com/holomush/itemforge/internal/logging"
	"github.com/holomush/itemforge/internal/metrics"
	"github.com/holomush/itemforge/pkg/catalog"
	"github.com/holomush/itemforge/pkg/item"
	"github.com/holomush/itemforge/pkg/memhost"
)

// app is the state shared by subcommands once the root command has run.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	catalog  *catalog.Catalog
	platform *memhost.Platform
	registry *item.Registry
	factory  *item.Factory
	metrics  *prometheus.Registry
}

// rootOptions holds flags that are not config keys.
type rootOptions struct {
	configFile  string
	dumpMetrics bool
}

// NewRootCmd creates the root command for the itemforge CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	cmd := &cobra.Command{
		Use:   "itemforge",
		Short: "Build, inspect and track game items",
		Long: `itemforge builds game item stacks from fluent descriptors.

Items can be described in one-line notation, YAML recipes or Lua scripts,
materialized on an in-memory host and traced back to the descriptor that
produced them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !opts.dumpMetrics || a.metrics == nil {
				return nil
			}
			return metrics.Dump(a.metrics, cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file path (default: $XDG_CONFIG_HOME/itemforge/config.yaml)")
	flags.BoolVar(&opts.dumpMetrics, "metrics", false, "print metrics to stderr when the command finishes")
	config.RegisterFlags(flags)

	cmd.AddCommand(newBuildCmd(a))
	cmd.AddCommand(newGiveCmd(a))
	cmd.AddCommand(newScriptCmd(a))
	cmd.AddCommand(newLookupCmd(a))
	cmd.AddCommand(newCatalogCmd(a))
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

func (a *app) init(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.Setup(logging.Options{
		Service: "itemforge",
		Version: version,
		Format:  cfg.Log.Format,
		Level:   cfg.Log.Level,
	}, cmd.ErrOrStderr())
	if err != nil {
		return oops.In("cli").Wrapf(err, "set up logging")
	}
	a.logger = logger

	if cfg.Catalog.Path != "" {
		a.catalog, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return err
		}
	} else {
		a.catalog = catalog.Default()
	}
	a.platform = memhost.New(a.catalog)

	a.metrics = prometheus.NewRegistry()
	observer := metrics.NewRegistered(a.metrics)

	a.registry = item.NewRegistry(
		item.WithCapacity(cfg.Tracking.Capacity),
		item.WithRegistryObserver(observer),
		item.WithRegistryLogger(logger),
	)
	a.factory = item.NewFactory(a.platform,
		item.WithRegistry(a.registry),
		item.WithTracking(cfg.Tracking.Enabled),
		item.WithObserver(observer),
		item.WithLogger(logger),
	)

	logger.Debug("itemforge ready",
		"catalog_version", a.catalog.Version().String(),
		"tracking", cfg.Tracking.Enabled,
		"capacity", cfg.Tracking.Capacity,
	)
	return nil
}
