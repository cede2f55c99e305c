// Package graph discovers every module reachable from an entry file and
// assigns each one a numeric id.
//
// # Traversal
//
// The Builder seeds the graph with the entry module (id 0) and then walks the
// module list with an index cursor that is re-checked against the list's
// current length on every step, so modules appended during the walk are
// visited in the same pass. The result is breadth-first discovery order.
//
// For each specifier of the visited module the builder:
//
//  1. resolves the specifier to an absolute path (see Resolution),
//  2. reuses the id already registered for that path, or loads the file and
//     appends it with the next id,
//  3. records specifier -> id in the importer's Mapping.
//
// Because ids are registered by resolved path, every file is read and
// registered exactly once no matter how many modules import it, and a cyclic
// import terminates instead of growing the graph forever.
//
// # Cycles
//
// Every import edge is also recorded in a dag.Graph. With CyclesReject the
// finished graph is checked and a cycle fails the build with a *CycleError.
// With CyclesAllow the memoized graph is returned as is; executing such a
// bundle requires the cached instancing mode of the runtime loader.
//
// # State
//
// The id counter and path registry live for the duration of one Build call.
// A Builder holds no per-build state and can be reused.
package graph
