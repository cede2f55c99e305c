package graph

import (
	"path/filepath"

	"github.com/specialistvlad/minipack/internal/module"
)

// Graph is the ordered set of modules reachable from the entry module.
// Modules[i].ID == i, and Modules[0] is the entry. A Graph returned by
// Builder.Build is complete and must not be modified.
type Graph struct {
	Modules []*module.Module
	// BaseDir is the absolute project root the build was configured with.
	BaseDir string
}

// Entry returns the entry module.
func (g *Graph) Entry() *module.Module {
	return g.Modules[0]
}

// Module returns the module registered under id.
func (g *Graph) Module(id int) (*module.Module, bool) {
	if id < 0 || id >= len(g.Modules) {
		return nil, false
	}
	return g.Modules[id], true
}

// Name returns path relative to the base directory with forward slashes. It
// is the display name used in logs, errors and bundle comments.
func (g *Graph) Name(path string) string {
	return displayName(g.BaseDir, path)
}

func displayName(baseDir, path string) string {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
