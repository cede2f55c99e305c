package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dop251/goja"
	"github.com/specialistvlad/minipack/internal/ctxlog"
)

// ErrEvaluate is matched by every error raised while executing a bundle.
var ErrEvaluate = errors.New("bundle evaluation failed")

// maxCallStackSize turns runaway require recursion into a RangeError instead
// of exhausting the Go stack.
const maxCallStackSize = 4096

var consoleLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"log":   slog.LevelInfo,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Evaluate runs artifact in a fresh JavaScript VM and returns the exports of
// the entry module. Calls to console.* inside the bundle are written to the
// context logger. Cancelling ctx interrupts the VM.
func Evaluate(ctx context.Context, artifact string) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)
	vm := goja.New()
	vm.SetMaxCallStackSize(maxCallStackSize)

	console := vm.NewObject()
	for name, level := range consoleLevels {
		level := level
		err :=console.Set(name, func(call goja.FunctionCall) goja.Value {
			parts := make([]string, len(call.Arguments))
			for i, arg := range call.Arguments {
				parts[i] = arg.String()
			}
			logger.Log(ctx, level, strings.Join(parts, " "), "source", "bundle")
			return goja.Undefined()
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEvaluate, err)
		}
	}
	if err := vm.Set("console", console); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluate, err)
	}

	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	value, err := vm.RunString(artifact)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluate, err)
	}

	exports, ok := value.Export().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: entry module produced %s instead of an exports object", ErrEvaluate, value.String())
	}
	logger.Debug("Bundle evaluated.", "exports", len(exports))
	return exports, nil
}
