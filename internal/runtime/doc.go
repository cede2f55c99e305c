// Package runtime owns the module loader that ships inside every bundle, and
// an embedded JavaScript engine that can execute a finished bundle.
//
// The loader exposes one operation, execute(id). It looks up the module body
// and specifier mapping for id, creates an empty exports object and calls the
// body with a require function and that object. require(specifier) looks the
// specifier up in the calling module's mapping and calls execute on the
// resulting id. The bundle bootstrap returns execute(0).
//
// How often a shared module runs is selected by Instancing:
//
//   - Cached executes each module once. The exports object is stored before
//     the body runs, so a module on a require cycle sees the partially filled
//     exports of the module that is still executing.
//   - Reexecute runs the module body again on every require and hands out a
//     fresh exports object each time. Cyclic graphs never terminate in this
//     mode, which is why the configuration refuses to combine it with
//     allowed cycles.
package runtime
