package bundle

import (
	"fmt"
	"maps"

	"github.com/specialistvlad/minipack/internal/graph"
)

// Entry is one row of the module table.
type Entry struct {
	ID int
	// Name is the module path relative to the project root, for comments.
	Name string
	// Body is the module source, wrapped unchanged into a module function.
	Body    string
	Mapping map[string]int
}

// Table lists the entries of a bundle in id order.
type Table []Entry

// Collect converts g into a Table. It fails if a mapping names a module id
// that g does not contain, since the bundle could not load it.
func Collect(g *graph.Graph) (Table, error) {
	table := make(Table, 0, len(g.Modules))
	for _, m := range g.Modules {
		for spec, id := range m.Mapping {
			if _, ok := g.Module(id); !ok {
				return nil, fmt.Errorf("module %s maps %q to unknown module id %d", g.Name(m.Path), spec, id)
			}
		}
		table = append(table, Entry{
			ID:      m.ID,
			Name:    g.Name(m.Path),
			Body:    m.Source,
			Mapping: maps.Clone(m.Mapping),
		})
	}
	return table, nil
}
