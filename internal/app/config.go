package app

import (
	"errors"

	"github.com/specialistvlad/minipack/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath optionally names an HCL file or directory with build settings.
	ConfigPath string
	// Build holds settings given directly, e.g. as flags. Set fields take
	// precedence over the configuration file.
	Build config.Model

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Build.Entry == "" && cfg.ConfigPath == "" {
		return nil, errors.New("an entry file or a configuration file is required")
	}
	return &cfg, nil
}
