// Package config defines the format-agnostic build configuration and the
// Loader interface used to read it from a configuration file.
//
// A Model holds raw, unvalidated settings as they appear in a file or on the
// command line. Models from different sources are combined with Merge, and
// Model.Settings validates the result and applies defaults. The typed
// Settings value is the single source of truth for the build pipeline.
package config
