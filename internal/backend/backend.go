// Package backend abstracts the on-device inference runtime.
//
// A Backend loads at most what the caller asks for; caching, fallback and
// serialization live in the manager package. Sessions hand out TokenStreams,
// pull iterators that may be abandoned part-way through.
//
// Build tags:
//
//   - llama: in-process go-llama.cpp adapter (llama.go, llama_cgo.go).
//     Without the tag a stub is compiled that refuses to load (llama_stub.go).
//   - gpu: marks the build as accelerated (see tuning.AcceleratedBuild).
package backend

import (
	"errors"

	"mintai/internal/tuning"
)

// Backend loads models.
type Backend interface {
	// Name identifies the runtime in status output.
	Name() string
	// Available is false when the runtime was not compiled in.
	Available() bool
	// Accelerated reports whether accelerator offload was compiled in.
	Accelerated() bool
	// SessionDefaults are the runtime's own session defaults, before tuning.
	SessionDefaults() tuning.SessionParams
	// Load reads the model file. It may take seconds and gigabytes.
	Load(path string, p tuning.LoadParams) (Model, error)
}

// Model is a loaded model. It is not safe for concurrent sessions.
type Model interface {
	NewSession(p tuning.SessionParams) (Session, error)
}

// Session is one prompt ingestion followed by one generation run.
type Session interface {
	// Ingest feeds the prompt into the session context.
	Ingest(prompt string) error
	// Complete starts producing up to maxTokens fragments.
	Complete(maxTokens int) (TokenStream, error)
	// Close releases the session, closing any open stream first.
	Close() error
}

// TokenStream is a finite, non-restartable sequence of text fragments.
type TokenStream interface {
	// Next returns the next fragment, or false when the stream has ended.
	Next() (string, bool)
	// Err reports a backend failure once Next has returned false.
	Err() error
	// Close abandons the remaining fragments. Abandoning is not an error.
	Close() error
}

type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable reports a runtime that was not compiled in.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err comes from a missing runtime.
func IsDependencyUnavailable(err error) bool {
	var e dependencyUnavailableError
	return errors.As(err, &e)
}
