package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/minipack/internal/config"
	"github.com/specialistvlad/minipack/internal/ctxlog"
	"github.com/specialistvlad/minipack/internal/fsutil"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	settings *config.Settings
	fs       fsutil.ReadWriter
}

// NewApp is the constructor for the main application. It loads the optional
// configuration file through loader, applies cfg.Build on top of it and
// validates the result.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model := &cfg.Build
	if cfg.ConfigPath != "" {
		fileModel, err := loader.Load(ctx, cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		model = config.Merge(fileModel, &cfg.Build)
		logger.Debug("Configuration file merged.", "path", cfg.ConfigPath)
	}

	settings, err := model.Settings()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("Configuration validated.",
		"entry", settings.Entry,
		"output", settings.Output,
		"resolution", settings.Resolution,
		"instancing", settings.Instancing,
		"cycles", settings.Cycles,
		"scanner", settings.Scanner,
	)

	return &App{
		outW:     outW,
		logger:   logger,
		settings: settings,
		fs:       fsutil.OS{},
	}, nil
}

// Settings returns the validated build settings. This is primarily for testing.
func (a *App) Settings() *config.Settings {
	return a.settings
}
