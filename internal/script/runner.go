// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package script

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/oops"

	"github.com/holomush/itemforge/pkg/catalog"
	"github.com/holomush/itemforge/pkg/item"
)

// CodeScript marks a script that failed to compile or run.
const CodeScript = "SCRIPT_FAILED"

// Runner executes item scripts. Each run gets a fresh Lua state.
// A Runner is safe for concurrent use when its factory is.
type Runner struct {
	factory *item.Factory
	catalog *catalog.Catalog
	logger  *slog.Logger
	libs    []safeLibrary
}

// NewRunner creates a runner that builds descriptors with fac.
// Panics if fac or cat is nil.
func NewRunner(fac *item.Factory, cat *catalog.Catalog, logger *slog.Logger) *Runner {
	if fac == nil || cat == nil {
		panic("script.NewRunner: factory and catalog are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		factory: fac,
		catalog: cat,
		logger:  logger,
		libs:    defaultSafeLibraries(),
	}
}

// Run executes code and returns the descriptors it passed to itemforge.give,
// in call order. name identifies the script in errors and logs.
func (r *Runner) Run(ctx context.Context, name, code string) ([]*item.Descriptor, error) {
	L, err := newState(ctx, r.libs)
	if err != nil {
		return nil, err
	}
	defer L.Close()

	x := &run{r: r, name: name}
	x.register(L)

	if err := L.DoString(code); err != nil {
		return nil, oops.In("script").Code(CodeScript).With("script", name).Wrap(err)
	}
	r.logger.Debug("script finished", "script", name, "given", len(x.given))
	return x.given, nil
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) ([]*item.Descriptor, error) {
	code, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, oops.In("script").With("path", path).Hint("failed to read script file").Wrap(err)
	}
	return r.Run(ctx, filepath.Base(path), string(code))
}
