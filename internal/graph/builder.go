package graph

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/minipack/internal/ctxlog"
	"github.com/specialistvlad/minipack/internal/dag"
	"github.com/specialistvlad/minipack/internal/module"
)

// CyclePolicy decides what happens when the import graph contains a cycle.
type CyclePolicy string

const (
	// CyclesReject fails the build with a *CycleError.
	CyclesReject CyclePolicy = "reject"
	// CyclesAllow keeps the cycle; modules on it share their memoized ids.
	CyclesAllow CyclePolicy = "allow"
)

// ParseCyclePolicy validates a cycle policy name. An empty name selects CyclesReject.
func ParseCyclePolicy(s string) (CyclePolicy, error) {
	switch p := CyclePolicy(s); p {
	case CyclesReject, CyclesAllow:
		return p, nil
	case "":
		return CyclesReject, nil
	default:
		return "", fmt.Errorf("invalid cycle policy %q: must be %q or %q", s, CyclesReject, CyclesAllow)
	}
}

// ErrCyclicDependency is matched by every *CycleError.
var ErrCyclicDependency = errors.New("cyclic dependency")

// CycleError lists the modules on a dependency cycle by display name. Each
// module requires the next one, and the last element repeats the first.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCyclicDependency, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCyclicDependency
}

// Options configures a Builder.
type Options struct {
	// BaseDir is the project root. It defaults to the entry file's directory.
	BaseDir    string
	Resolution Resolution
	Cycles     CyclePolicy
}

// Builder constructs module graphs.
type Builder struct {
	loader *module.Loader
	opts   Options
}

// NewBuilder returns a Builder that loads modules through loader.
func NewBuilder(loader *module.Loader, opts Options) *Builder {
	return &Builder{loader: loader, opts: opts}
}

// Build discovers all modules reachable from entryPath. Any read, scan or
// resolution failure aborts the build; no partial graph is returned.
func (b *Builder) Build(ctx context.Context, entryPath string) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "entry", entryPath)

	entry, err := filepath.Abs(entryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entry %s: %w", entryPath, err)
	}
	baseDir := filepath.Dir(entry)
	if b.opts.BaseDir != "" {
		if baseDir, err = filepath.Abs(b.opts.BaseDir); err != nil {
			return nil, fmt.Errorf("failed to resolve base directory %s: %w", b.opts.BaseDir, err)
		}
	}

	// Per-build state: the id counter, the path registry and the edge set.
	ids := &module.Counter{}
	registry := make(map[string]int)
	edges := dag.New()

	first, err := b.loader.Load(ctx, entry, ids)
	if err != nil {
		return nil, err
	}
	g := &Graph{Modules: []*module.Module{first}, BaseDir: baseDir}
	registry[entry] = first.ID
	edges.AddNode(entry)

	// The bound is re-read on every iteration so appended modules are visited.
	for i := 0; i < len(g.Modules); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m := g.Modules[i]
		mctx := ctxlog.With(ctx, "importer", g.Name(m.Path))
		ctxlog.FromContext(mctx).Debug("Build: Linking dependencies.", "id", m.ID, "count", len(m.Specifiers))
		for _, spec := range m.Specifiers {
			target, err := Resolve(b.opts.Resolution, baseDir, m.Path, spec)
			if err != nil {
				var resErr *ResolutionError
				if errors.As(err, &resErr) {
					resErr.Importer = g.Name(m.Path)
				}
				return nil, err
			}

			id, seen := registry[target]
			if !seen {
				dep, err := b.loader.Load(mctx, target, ids)
				if err != nil {
					return nil, fmt.Errorf("%q required by %s: %w", spec, g.Name(m.Path), err)
				}
				id = dep.ID
				registry[target] = id
				g.Modules = append(g.Modules, dep)
				edges.AddNode(target)
			}
			m.Mapping[spec] = id

			if err := edges.AddEdge(target, m.Path); err != nil {
				var cycleErr *dag.CycleError
				if errors.As(err, &cycleErr) && b.opts.Cycles == CyclesAllow {
					continue
				}
				return nil, b.convert(g, err)
			}
		}
	}
	logger.Debug("Build: Traversal complete.", "module_count", len(g.Modules))

	if b.opts.Cycles != CyclesAllow {
		if err := edges.DetectCycles(); err != nil {
			return nil, b.convert(g, err)
		}
		logger.Debug("Build: Cycle detection passed.")
	}

	return g, nil
}

// convert rewrites dag cycle errors in terms of module display names.
func (b *Builder) convert(g *Graph, err error) error {
	var cycleErr *dag.CycleError
	if !errors.As(err, &cycleErr) {
		return err
	}
	names := make([]string, len(cycleErr.Path))
	for i, p := range cycleErr.Path {
		names[i] = g.Name(p)
	}
	return &CycleError{Path: names}
}
