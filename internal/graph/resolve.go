package graph

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Resolution selects the directory relative specifiers are joined with.
type Resolution string

const (
	// ResolveImporter joins a specifier with the directory of the module that
	// contains it. This is how CommonJS hosts resolve relative paths.
	ResolveImporter Resolution = "importer"
	// ResolveRoot joins every specifier with the base directory regardless of
	// where the importing module lives. It reproduces the first version of the
	// tool and is only correct for flat projects.
	ResolveRoot Resolution = "root"
)

// DefaultExtension is appended to resolved paths that have no extension.
const DefaultExtension = ".js"

// ErrResolution is matched by every *ResolutionError.
var ErrResolution = errors.New("unresolvable specifier")

// ResolutionError reports a specifier that is not a supported relative path.
type ResolutionError struct {
	Importer  string
	Specifier string
	// Reason is empty when the specifier is not relative at all.
	Reason string
}

func (e *ResolutionError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "only relative specifiers starting with ./ or ../ are supported"
	}
	return fmt.Sprintf("cannot resolve %q from %s: %s", e.Specifier, e.Importer, reason)
}

func (e *ResolutionError) Unwrap() error {
	return ErrResolution
}

// ParseResolution validates a resolution policy name. An empty name selects
// ResolveImporter.
func ParseResolution(s string) (Resolution, error) {
	switch r := Resolution(s); r {
	case ResolveImporter, ResolveRoot:
		return r, nil
	case "":
		return ResolveImporter, nil
	default:
		return "", fmt.Errorf("invalid resolution %q: must be %q or %q", s, ResolveImporter, ResolveRoot)
	}
}

// Resolve turns specifier, found in the module at importer, into an absolute
// path according to policy. baseDir and importer must be absolute.
func Resolve(policy Resolution, baseDir, importer, specifier string) (string, error) {
	if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
		return "", &ResolutionError{Importer: importer, Specifier: specifier}
	}
	switch specifier[strings.LastIndex(specifier, "/")+1:] {
	case "", ".", "..":
		return "", &ResolutionError{Importer: importer, Specifier: specifier, Reason: "specifier names a directory, not a file"}
	}

	dir := filepath.Dir(importer)
	if policy == ResolveRoot {
		dir = baseDir
	}

	resolved := filepath.Join(dir, filepath.FromSlash(specifier))
	if filepath.Ext(resolved) == "" {
		resolved += DefaultExtension
	}
	return resolved, nil
}
