package bundle

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/minipack/internal/graph"
	"github.com/specialistvlad/minipack/internal/module"
	"github.com/specialistvlad/minipack/internal/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGraph builds entry -> {./a, ./b}, a -> ./b by hand.
func testGraph() *graph.Graph {
	base := filepath.FromSlash("/project")
	return &graph.Graph{
		BaseDir: base,
		Modules: []*module.Module{
			{
				ID:         0,
				Path:       filepath.Join(base, "index.js"),
				Source:     "exports.sum = require('./a').value + require('./b').value;\n",
				Specifiers: []string{"./a", "./b"},
				Mapping:    map[string]int{"./a": 1, "./b": 2},
			},
			{
				ID:         1,
				Path:       filepath.Join(base, "lib", "a.js"),
				Source:     "exports.value = require('./b').value * 10;",
				Specifiers: []string{"./b"},
				Mapping:    map[string]int{"./b": 2},
			},
			{
				ID:      2,
				Path:    filepath.Join(base, "b.js"),
				Source:  "exports.value = 4; // trailing comment",
				Mapping: map[string]int{},
			},
		},
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	g := testGraph()
	table, err := Collect(g)
	require.NoError(t, err)

	require.Len(t, table, 3)
	assert.Equal(t, Entry{ID: 0, Name: "index.js", Body: g.Modules[0].Source, Mapping: map[string]int{"./a": 1, "./b": 2}}, table[0])
	assert.Equal(t, "lib/a.js", table[1].Name)
	assert.Equal(t, map[string]int{}, table[2].Mapping)

	table[0].Mapping["./c"] = 3
	assert.NotContains(t, g.Modules[0].Mapping, "./c", "the table must not alias graph state")
}

func TestCollect_UnknownModuleID(t *testing.T) {
	t.Parallel()

	g := testGraph()
	g.Modules[1].Mapping["./b"] = 7

	table, err := Collect(g)
	assert.Nil(t, table)
	assert.ErrorContains(t, err, `module lib/a.js maps "./b" to unknown module id 7`)

	_, err = Emit(g, runtime.Cached)
	assert.ErrorContains(t, err, "unknown module id 7")
}

func TestRender_Layout(t *testing.T) {
	t.Parallel()

	table := Table{
		{ID: 0, Name: "index.js", Body: "exports.a = require('./z').z;\n", Mapping: map[string]int{"./z": 2, "./a": 1}},
		{ID: 1, Name: "a.js", Body: "exports.a = 1", Mapping: map[string]int{}},
	}

	out, err := Render(table, runtime.Cached)
	require.NoError(t, err)

	expected := header +
		"(function (modules) {\n" +
		runtime.Loader(runtime.Cached) +
		"\n  return execute(0);\n})({\n" +
		"  /* index.js */\n" +
		"  0: [function (require, exports) {\n" +
		"exports.a = require('./z').z;\n" +
		"  }, {\"./a\":1,\"./z\":2}],\n" +
		"  /* a.js */\n" +
		"  1: [function (require, exports) {\n" +
		"exports.a = 1\n" +
		"  }, {}]\n" +
		"});\n"
	assert.Equal(t, expected, out)
}

func TestRender_SelectsLoader(t *testing.T) {
	t.Parallel()

	table := Table{{ID: 0, Body: ""}}

	cached, err := Render(table, runtime.Cached)
	require.NoError(t, err)
	assert.Contains(t, cached, runtime.Loader(runtime.Cached))

	reexec, err := Render(table, runtime.Reexecute)
	require.NoError(t, err)
	assert.Contains(t, reexec, runtime.Loader(runtime.Reexecute))
	assert.NotContains(t, reexec, "/*", "unnamed entries carry no comment")
}

func TestRender_EscapesCommentTerminator(t *testing.T) {
	t.Parallel()

	out, err := Render(Table{{ID: 0, Name: "odd*/name.js"}}, runtime.Cached)
	require.NoError(t, err)
	assert.Contains(t, out, "/* odd* /name.js */")
}

func TestEmit_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := Emit(testGraph(), runtime.Cached)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Emit(testGraph(), runtime.Cached)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEmit_Executes(t *testing.T) {
	t.Parallel()

	for _, mode := range []runtime.Instancing{runtime.Cached, runtime.Reexecute} {
		mode := mode
		t.Run(string(mode), func(t *testing.T) {
			t.Parallel()

			out, err := Emit(testGraph(), mode)
			require.NoError(t, err)

			exports, err := runtime.Evaluate(context.Background(), out)
			require.NoError(t, err)
			assert.Equal(t, int64(44), exports["sum"])
		})
	}
}
