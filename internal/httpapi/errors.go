package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"mintai/internal/backend"
	"mintai/internal/manager"
	"mintai/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps a generation error to its HTTP status and a short kind label
// used for metrics.
func statusFor(err error) (int, string) {
	var he HTTPError
	switch {
	case manager.IsModelNotFound(err):
		return http.StatusNotFound, "not_found"
	case manager.IsLoadFailed(err), backend.IsDependencyUnavailable(err):
		return http.StatusServiceUnavailable, "load_failed"
	case manager.IsContextError(err):
		return http.StatusBadRequest, "context"
	case manager.IsEmptyOutput(err):
		return http.StatusUnprocessableEntity, "empty_output"
	case errors.As(err, &he):
		return he.StatusCode(), "service"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger().Debug().Err(err).Msg("encode response")
	}
}
