package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"mintai/internal/backend"
	"mintai/internal/manager"
	"mintai/pkg/types"
)

func TestGenerateErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", manager.ModelNotFoundError{Path: "/c/models/MintAI.gguf"}, http.StatusNotFound},
		{"load failed", manager.LoadFailedError{Path: "/m", Causes: []error{errors.New("GPU failed: x"), errors.New("CPU failed: y")}}, http.StatusServiceUnavailable},
		{"runtime missing", backend.ErrDependencyUnavailable("inference runtime not built"), http.StatusServiceUnavailable},
		{"context", manager.ContextError{Err: errors.New("prompt too long")}, http.StatusBadRequest},
		{"empty", manager.ErrEmptyOutput, http.StatusUnprocessableEntity},
		{"service status", mockHTTPError{msg: "teapot", code: http.StatusTeapot}, http.StatusTeapot},
		{"generation", manager.GenerationError{Err: errors.New("decode failed")}, http.StatusInternalServerError},
		{"other", io.EOF, http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := postGenerate(t, NewMux(&mockService{genErr: c.err}), `{"prompt":"hi"}`)
			if w.Code != c.code {
				t.Fatalf("expected %d, got %d", c.code, w.Code)
			}
			var body types.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("json: %v", err)
			}
			if body.Error != c.err.Error() || body.Code != c.code {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestNotFoundMessageIsVerbatim(t *testing.T) {
	err := manager.ModelNotFoundError{Path: "/c/models/MintAI.gguf"}
	w := postGenerate(t, NewMux(&mockService{genErr: err}), `{"prompt":"hi"}`)
	var body types.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Error != "Local model not found at /c/models/MintAI.gguf" {
		t.Fatalf("error=%q", body.Error)
	}
}
