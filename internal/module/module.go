// Package module turns a single source file into a Module record: the file's
// text, its dependency specifiers and the numeric id it is known by inside a
// bundle.
package module

import (
	"context"
	"fmt"

	"github.com/specialistvlad/minipack/internal/ctxlog"
	"github.com/specialistvlad/minipack/internal/fsutil"
	"github.com/specialistvlad/minipack/internal/scanner"
)

// Module is one source file of the bundle.
type Module struct {
	// ID is the module's position in discovery order. The entry module is 0.
	ID int
	// Path is the absolute path the module was read from.
	Path string
	// Source is the file content, embedded verbatim in the bundle.
	Source string
	// Specifiers lists the dependencies in order of first occurrence.
	Specifiers []string
	// Mapping resolves each specifier to the ID of the module it names. It is
	// filled by the graph builder and is complete once the build returns.
	Mapping map[string]int
}

// Counter hands out sequential module ids starting at 0. A Counter belongs to
// a single build; it is never shared between builds.
type Counter struct {
	next int
}

// Next returns the next unused id.
func (c *Counter) Next() int {
	id := c.next
	c.next++
	return id
}

// Loader reads and scans module sources.
type Loader struct {
	reader  fsutil.Reader
	scanner scanner.Scanner
}

// NewLoader creates a Loader that reads through r and extracts dependencies with s.
func NewLoader(r fsutil.Reader, s scanner.Scanner) *Loader {
	return &Loader{reader: r, scanner: s}
}

// Load reads the file at path and returns it as a Module with the next id from
// ids. The Mapping is empty until the graph builder fills it.
func (l *Loader) Load(ctx context.Context, path string, ids *Counter) (*Module, error) {
	logger := ctxlog.FromContext(ctx)

	source, err := l.reader.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load module: %w", err)
	}

	specifiers, err := l.scanner.Scan(source)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}

	m := &Module{
		ID:         ids.Next(),
		Path:       path,
		Source:     source,
		Specifiers: specifiers,
		Mapping:    make(map[string]int, len(specifiers)),
	}
	logger.Debug("Module loaded.", "id", m.ID, "path", path, "dependencies", len(specifiers))
	return m, nil
}
