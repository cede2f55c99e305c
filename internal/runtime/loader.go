package runtime

import "fmt"

// Instancing selects how the bundle loader treats repeated requires.
type Instancing string

const (
	Cached    Instancing = "cached"
	Reexecute Instancing = "reexecute"
)

// ParseInstancing validates an instancing mode name. An empty name selects Cached.
func ParseInstancing(s string) (Instancing, error) {
	switch i := Instancing(s); i {
	case Cached, Reexecute:
		return i, nil
	case "":
		return Cached, nil
	default:
		return "", fmt.Errorf("invalid instancing %q: must be %q or %q", s, Cached, Reexecute)
	}
}

// The loaders are written in ES5 so the bundle runs on any host that can
// evaluate plain function calls and object literals. Both expect the module
// table in scope as `modules`, keyed by id, each entry [body, mapping].

const cachedLoader = `  var cache = {};

  function execute(id) {
    if (Object.prototype.hasOwnProperty.call(cache, id)) {
      return cache[id];
    }
    var fn = modules[id][0];
    var mapping = modules[id][1];
    var exports = {};
    cache[id] = exports;

    function require(specifier) {
      if (!Object.prototype.hasOwnProperty.call(mapping, specifier)) {
        throw new Error("Cannot find module '" + specifier + "' from module " + id);
      }
      return execute(mapping[specifier]);
    }

    try {
      fn(require, exports);
    } catch (err) {
      delete cache[id];
      throw err;
    }
    return exports;
  }
`

const reexecuteLoader = `  function execute(id) {
    var fn = modules[id][0];
    var mapping = modules[id][1];
    var exports = {};

    function require(specifier) {
      if (!Object.prototype.hasOwnProperty.call(mapping, specifier)) {
        throw new Error("Cannot find module '" + specifier + "' from module " + id);
      }
      return execute(mapping[specifier]);
    }

    fn(require, exports);
    return exports;
  }
`

// Loader returns the JavaScript source of the execute function for mode.
func Loader(mode Instancing) string {
	if mode == Reexecute {
		return reexecuteLoader
	}
	return cachedLoader
}
