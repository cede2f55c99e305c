// Package dag provides a small directed graph keyed by string ids, used to
// check the module dependency graph for cycles once it has been discovered.
//
// An edge from A to B records that B depends on A. Nodes and edges keep their
// insertion order, so traversal results, and therefore error messages, are
// stable from one run to the next.
package dag
