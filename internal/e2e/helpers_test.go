package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"mintai/internal/backend"
	"mintai/internal/httpapi"
	"mintai/internal/manager"
	"mintai/internal/modelpath"
	"mintai/internal/tuning"
)

// createModelFile writes a placeholder .gguf file and returns its path.
func createModelFile(t *testing.T, dir, name string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("GGUF"), 0o644); err != nil {
		t.Fatalf("write temp model %s: %v", p, err)
	}
	return p
}

// newServer starts the HTTP API over a manager rooted at a fresh config dir.
// The tuner follows the backend's build mode, so an accelerated fake gets an
// accelerated first attempt.
func newServer(t *testing.T, b backend.Backend) (*httptest.Server, *manager.Manager, string) {
	t.Helper()
	cfgDir := t.TempDir()
	accel := b.Accelerated()
	mgr := manager.NewWithConfig(manager.Config{
		Backend: b,
		Paths:   modelpath.WithConfigDir(cfgDir, "", zerolog.Nop()),
		Tuner: tuning.Tuner{
			Getenv:      func(string) (string, bool) { return "", false },
			Accelerated: &accel,
		},
		Log: zerolog.Nop(),
	})
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv, mgr, cfgDir
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	return httpDo(t, http.MethodGet, url, nil)
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	return httpDo(t, http.MethodPost, url, payload)
}

func httpDo(t *testing.T, method, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, body)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	out, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, out
}
