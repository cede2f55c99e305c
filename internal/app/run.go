package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/minipack/internal/bundle"
	"github.com/specialistvlad/minipack/internal/ctxlog"
	"github.com/specialistvlad/minipack/internal/graph"
	"github.com/specialistvlad/minipack/internal/module"
	"github.com/specialistvlad/minipack/internal/runtime"
	"github.com/specialistvlad/minipack/internal/scanner"
)

// Run builds the bundle and writes it to the configured output. Nothing is
// written unless every earlier step succeeded.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	artifact, g, err := a.Bundle(ctx)
	if err != nil {
		return err
	}

	if err := a.fs.WriteFile(a.settings.Output, artifact); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	a.logger.Info("📦 Bundle written.", "output", a.settings.Output, "modules", len(g.Modules), "bytes", len(artifact))

	a.logger.Debug("App.Run method finished.")
	return nil
}

// Bundle builds the module graph and renders the bundle text without writing
// it. With verification enabled the bundle is also executed once.
func (a *App) Bundle(ctx context.Context) (string, *graph.Graph, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	s := a.settings

	sc, err := scanner.New(s.Scanner)
	if err != nil {
		return "", nil, err
	}
	builder := graph.NewBuilder(module.NewLoader(a.fs, sc), graph.Options{
		BaseDir:    s.BaseDir,
		Resolution: s.Resolution,
		Cycles:     s.Cycles,
	})

	a.logger.Debug("Building dependency graph...", "entry", s.Entry)
	g, err := builder.Build(ctx, s.Entry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.logger.Debug("Dependency graph built.", "module_count", len(g.Modules))

	artifact, err := bundle.Emit(g, s.Instancing)
	if err != nil {
		return "", nil, fmt.Errorf("failed to render bundle: %w", err)
	}

	if s.Verify {
		a.logger.Debug("Verifying bundle in embedded runtime...")
		exports, err := runtime.Evaluate(ctx, artifact)
		if err != nil {
			return "", nil, fmt.Errorf("bundle verification failed: %w", err)
		}
		a.logger.Info("✅ Bundle verified.", "entry_exports", len(exports))
	}

	return artifact, g, nil
}
