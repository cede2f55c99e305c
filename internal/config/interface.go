package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the configuration at path and translates it into a Model.
	// Relative paths in the result are already resolved against the
	// location of the configuration.
	Load(ctx context.Context, path string) (*Model, error)
}
