package httpapi

import (
	"testing"
	"time"
)

func TestSetMaxBodyBytes(t *testing.T) {
	defer SetMaxBodyBytes(0)
	SetMaxBodyBytes(-1)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(1234)
	if maxBodyBytes != 1234 {
		t.Fatalf("expected 1234, got %d", maxBodyBytes)
	}
}

func TestSetWaitTimeout_NormalizesNegativeToZero(t *testing.T) {
	defer SetWaitTimeout(0)
	SetWaitTimeout(-time.Second)
	if waitTimeout != 0 {
		t.Fatalf("expected 0, got %v", waitTimeout)
	}
	SetWaitTimeout(3 * time.Second)
	if waitTimeout != 3*time.Second {
		t.Fatalf("expected 3s, got %v", waitTimeout)
	}
}

func TestSetCORSOptions_Defaults(t *testing.T) {
	defer SetCORSOptions(false, nil, nil, nil)
	SetCORSOptions(true, []string{"tauri://localhost"}, nil, nil)
	if !corsEnabled || len(corsAllowedMethods) == 0 || len(corsAllowedHeaders) == 0 {
		t.Fatalf("defaults not applied: methods=%v headers=%v", corsAllowedMethods, corsAllowedHeaders)
	}
}
