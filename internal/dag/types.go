package dag

import (
	"fmt"
	"strings"
	"sync"
)

// Graph is a collection of nodes and their dependencies. All operations on
// the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order lists node ids in insertion order.
	order []string
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs),
// not by direct struct manipulation.
type node struct {
	id string
	// deps holds the nodes this node depends on, in insertion order.
	deps []*node
	// depSet indexes deps by id to keep edges unique.
	depSet map[string]struct{}
}

// CycleError reports a dependency cycle. Path starts and ends with the same
// id and follows dependency direction: each element depends on the next.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected: %s", strings.Join(e.Path, " -> "))
}
