package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/minipack/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing, logging at
// debug level into the returned buffer.
func SetupAppTest(t *testing.T, cfg *Config) (*App, *SafeBuffer, error) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	testApp, err := NewApp(logBuffer, cfg, hcl.NewLoader())

	t.Cleanup(func() {
		if os.Getenv("MINIPACK_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer, err
}
