package manager

import (
	"errors"

	"go.uber.org/multierr"
)

// ModelNotFoundError reports a model path with no file behind it.
type ModelNotFoundError struct{ Path string }

func (e ModelNotFoundError) Error() string { return "Local model not found at " + e.Path }

// IsModelNotFound reports whether err indicates a missing model file.
func IsModelNotFound(err error) bool {
	var e ModelNotFoundError
	return errors.As(err, &e)
}

// LoadFailedError reports that no load attempt succeeded. Nothing was
// cached, so the next request tries again.
type LoadFailedError struct {
	Path   string
	Causes []error
}

func (e LoadFailedError) Error() string {
	if len(e.Causes) == 0 {
		return "failed to load local model from " + e.Path
	}
	return multierr.Combine(e.Causes...).Error()
}

func (e LoadFailedError) Unwrap() []error { return e.Causes }

// IsLoadFailed reports whether err indicates a failed model load.
func IsLoadFailed(err error) bool {
	var e LoadFailedError
	return errors.As(err, &e)
}

// ContextError reports a prompt the backend refused to ingest.
type ContextError struct{ Err error }

func (e ContextError) Error() string { return e.Err.Error() }
func (e ContextError) Unwrap() error { return e.Err }

// IsContextError reports whether err indicates a rejected prompt.
func IsContextError(err error) bool {
	var e ContextError
	return errors.As(err, &e)
}

// GenerationError reports a backend failure while opening a session or
// producing tokens, with no usable text produced.
type GenerationError struct{ Err error }

func (e GenerationError) Error() string { return e.Err.Error() }
func (e GenerationError) Unwrap() error { return e.Err }

// IsGenerationError reports whether err is a GenerationError.
func IsGenerationError(err error) bool {
	var e GenerationError
	return errors.As(err, &e)
}

// ErrEmptyOutput is returned when generation produced only whitespace.
//
//lint:ignore ST1005 shown verbatim to the user
var ErrEmptyOutput = errors.New("Local model returned empty output.")

// IsEmptyOutput reports whether err is ErrEmptyOutput.
func IsEmptyOutput(err error) bool { return errors.Is(err, ErrEmptyOutput) }
