// Package bundle serializes a module graph into a single JavaScript program.
//
// Emission happens in two separate steps. Collect turns a graph into a Table,
// a plain list of module bodies and specifier mappings with no formatting
// concerns. Render turns a Table into text: the module table becomes an
// object literal keyed by id, and it is passed to a self-invoking bootstrap
// that embeds the runtime loader and immediately executes module 0.
//
// Both steps are pure and deterministic: the same graph always yields the
// same bytes.
package bundle
