package runtime

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/specialistvlad/minipack/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// artifact wires a module table into the loader for mode the same way a
// bundle does, without going through the bundle renderer. Each body is the
// inside of a module function; mappings are JS object literals.
func artifact(mode Instancing, prelude string, bodies []string, mappings []string) string {
	var b strings.Builder
	b.WriteString(prelude)
	b.WriteString("\n(function (modules) {\n")
	b.WriteString(Loader(mode))
	b.WriteString("  return execute(0);\n})({\n")
	for i := range bodies {
		b.WriteString("  ")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(": [function (require, exports) {\n")
		b.WriteString(bodies[i])
		b.WriteString("\n  }, ")
		b.WriteString(mappings[i])
		b.WriteString("],\n")
	}
	b.WriteString("});\n")
	return b.String()
}

// counterGraph is entry -> {a, b}, a -> counter, b -> counter, where counter
// bumps a host-level load counter every time its body runs.
func counterGraph(mode Instancing) string {
	return artifact(mode, "var state = { loads: 0 };",
		[]string{
			"exports.fromA = require('./a').loads; exports.fromB = require('./b').loads; exports.total = state.loads;",
			"exports.loads = require('./counter').loads;",
			"exports.loads = require('./counter').loads;",
			"state.loads++; exports.loads = state.loads;",
		},
		[]string{`{"./a": 1, "./b": 2}`, `{"./counter": 3}`, `{"./counter": 3}`, `{}`},
	)
}

func TestEvaluate_CachedExecutesSharedModuleOnce(t *testing.T) {
	t.Parallel()

	exports, err := Evaluate(context.Background(), counterGraph(Cached))
	require.NoError(t, err)
	assert.Equal(t, int64(1), exports["fromA"])
	assert.Equal(t, int64(1), exports["fromB"])
	assert.Equal(t, int64(1), exports["total"])
}

func TestEvaluate_ReexecuteRunsSharedModulePerRequire(t *testing.T) {
	t.Parallel()

	exports, err := Evaluate(context.Background(), counterGraph(Reexecute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), exports["fromA"])
	assert.Equal(t, int64(2), exports["fromB"])
	assert.Equal(t, int64(2), exports["total"])
}

func TestEvaluate_ExportsIdentity(t *testing.T) {
	t.Parallel()

	bodies := []string{"exports.same = require('./a') === require('./a');", "exports.v = {};"}
	mappings := []string{`{"./a": 1}`, `{}`}

	exports, err := Evaluate(context.Background(), artifact(Cached, "", bodies, mappings))
	require.NoError(t, err)
	assert.Equal(t, true, exports["same"])

	exports, err = Evaluate(context.Background(), artifact(Reexecute, "", bodies, mappings))
	require.NoError(t, err)
	assert.Equal(t, false, exports["same"])
}

func TestEvaluate_CachedCycleSeesPartialExports(t *testing.T) {
	t.Parallel()

	src := artifact(Cached, "",
		[]string{
			"exports.early = 'set before require'; exports.seen = require('./b').sawEarly;",
			"exports.sawEarly = require('./a').early;",
		},
		[]string{`{"./b": 1}`, `{"./a": 0}`},
	)

	exports, err := Evaluate(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "set before require", exports["seen"])
}

func TestEvaluate_CachedFailureIsNotCached(t *testing.T) {
	t.Parallel()

	src := artifact(Cached, "var state = { runs: 0 };",
		[]string{
			"try { require('./flaky'); } catch (e) { exports.first = e.message; }\n" +
				"exports.second = require('./flaky').ok; exports.runs = state.runs;",
			"state.runs++; exports.ok = 'partial'; if (state.runs === 1) { throw new Error('boom'); } exports.ok = 'loaded';",
		},
		[]string{`{"./flaky": 1}`, `{}`},
	)

	exports, err := Evaluate(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "boom", exports["first"])
	assert.Equal(t, "loaded", exports["second"])
	assert.Equal(t, int64(2), exports["runs"])
}

func TestEvaluate_ReexecuteCycleFails(t *testing.T) {
	t.Parallel()

	src := artifact(Reexecute, "",
		[]string{"require('./b');", "require('./a');"},
		[]string{`{"./b": 1}`, `{"./a": 0}`},
	)

	_, err := Evaluate(context.Background(), src)
	assert.ErrorIs(t, err, ErrEvaluate)
}

func TestEvaluate_UnknownSpecifier(t *testing.T) {
	t.Parallel()

	for _, mode := range []Instancing{Cached, Reexecute} {
		src := artifact(mode, "", []string{"require('./nope');"}, []string{`{}`})

		_, err := Evaluate(context.Background(), src)
		assert.ErrorIs(t, err, ErrEvaluate)
		assert.ErrorContains(t, err, "Cannot find module './nope' from module 0")
	}
}

func TestEvaluate_ConsoleIsLogged(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(buf, nil)))
	src := artifact(Cached, "", []string{"console.log('hello', 'world'); console.warn('careful');"}, []string{`{}`})

	_, err := Evaluate(ctx, src)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `msg="hello world"`)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "source=bundle")
}

func TestEvaluate_ConsoleMethods(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		method string
		level  string
	}{
		{method: "debug", level: "DEBUG"},
		{method: "log", level: "INFO"},
		{method: "info", level: "INFO"},
		{method: "warn", level: "WARN"},
		{method: "error", level: "ERROR"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.method, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			ctx := ctxlog.WithLogger(context.Background(), logger)
			src := artifact(Cached, "", []string{"console." + tc.method + "('via', 1);"}, []string{`{}`})

			_, err := Evaluate(ctx, src)
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "level="+tc.level+` msg="via 1"`)
		})
	}
}

func TestEvaluate_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := Evaluate(context.Background(), "(function (modules) {")
	assert.ErrorIs(t, err, ErrEvaluate)
}

func TestEvaluate_NonObjectResult(t *testing.T) {
	t.Parallel()

	_, err := Evaluate(context.Background(), "42")
	assert.ErrorIs(t, err, ErrEvaluate)
	assert.ErrorContains(t, err, "instead of an exports object")
}

func TestParseInstancing(t *testing.T) {
	t.Parallel()

	mode, err := ParseInstancing("")
	require.NoError(t, err)
	assert.Equal(t, Cached, mode)

	mode, err = ParseInstancing("reexecute")
	require.NoError(t, err)
	assert.Equal(t, Reexecute, mode)

	_, err = ParseInstancing("singleton")
	assert.ErrorContains(t, err, `invalid instancing "singleton"`)
}

func TestLoader(t *testing.T) {
	t.Parallel()

	assert.Contains(t, Loader(Cached), "cache[id] = exports;")
	assert.NotContains(t, Loader(Reexecute), "cache")
	assert.Contains(t, Loader(Reexecute), "function execute(id)")
}
