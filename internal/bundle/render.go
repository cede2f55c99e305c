package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/minipack/internal/graph"
	"github.com/specialistvlad/minipack/internal/runtime"
)

const header = "// Bundled by minipack. Do not edit.\n"

// Render produces the bundle text for table using the loader for mode.
func Render(table Table, mode runtime.Instancing) (string, error) {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("(function (modules) {\n")
	b.WriteString(runtime.Loader(mode))
	b.WriteString("\n  return execute(0);\n})({\n")

	for i, e := range table {
		mapping, err := mappingLiteral(e.Mapping)
		if err != nil {
			return "", fmt.Errorf("failed to encode mapping of module %d: %w", e.ID, err)
		}
		if e.Name != "" {
			b.WriteString("  /* ")
			b.WriteString(strings.ReplaceAll(e.Name, "*/", "* /"))
			b.WriteString(" */\n")
		}
		b.WriteString("  ")
		b.WriteString(strconv.Itoa(e.ID))
		b.WriteString(": [function (require, exports) {\n")
		b.WriteString(e.Body)
		if !strings.HasSuffix(e.Body, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("  }, ")
		b.WriteString(mapping)
		b.WriteString("]")
		if i < len(table)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	b.WriteString("});\n")
	return b.String(), nil
}

// Emit renders the complete bundle for g.
func Emit(g *graph.Graph, mode runtime.Instancing) (string, error) {
	table, err := Collect(g)
	if err != nil {
		return "", err
	}
	return Render(table, mode)
}

// mappingLiteral encodes mapping as a JSON object, which is also a valid
// JavaScript object literal. Keys are sorted by the encoder.
func mappingLiteral(mapping map[string]int) (string, error) {
	if len(mapping) == 0 {
		return "{}", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(mapping); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
