package manager

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mintai/internal/backend/backendtest"
	"mintai/internal/modelpath"
	"mintai/internal/tuning"
)

// createModelFile writes a small placeholder model file and returns its path.
func createModelFile(t *testing.T, dir, name string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("GGUF"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

type testEnv struct {
	m      *Manager
	fb     *backendtest.Backend
	cfgDir string
	pub    *MemoryPublisher
}

// defaultModel creates the file the default model path points at.
func (e testEnv) defaultModel(t *testing.T) string {
	t.Helper()
	return createModelFile(t, filepath.Join(e.cfgDir, "models"), modelpath.DefaultModelFile)
}

// newTestEnv builds a Manager over a fake backend with a config dir under
// t.TempDir, 8 physical cores and the given environment.
func newTestEnv(t *testing.T, fb *backendtest.Backend, env map[string]string) testEnv {
	t.Helper()
	dir := t.TempDir()
	accel := fb.Accel
	pub := NewMemoryPublisher()
	m := NewWithConfig(Config{
		Backend: fb,
		Paths:   modelpath.Resolver{ConfigDir: func() (string, error) { return dir, nil }},
		Tuner: tuning.Tuner{
			Getenv: func(k string) (string, bool) {
				v, ok := env[k]
				return v, ok
			},
			Accelerated: &accel,
			Cores:       tuning.CoreCounterFunc(func() int { return 8 }),
		},
		Log:       zerolog.Nop(),
		Publisher: pub,
	})
	return testEnv{m: m, fb: fb, cfgDir: dir, pub: pub}
}

// testCtx returns a context with a short timeout, canceled on test cleanup.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return c
}

func repeatTok(tok string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = tok
	}
	return out
}
