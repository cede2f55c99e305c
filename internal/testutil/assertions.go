package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/specialistvlad/minipack/internal/runtime"
	"github.com/stretchr/testify/require"
)

// EvaluateBundleFile reads a written bundle and runs it, failing the test if
// either step fails. It returns the entry module's exports.
func EvaluateBundleFile(t *testing.T, path string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "bundle %s should be readable", path)

	exports, err := runtime.Evaluate(context.Background(), string(data))
	require.NoError(t, err, "bundle %s should evaluate", path)
	return exports
}
