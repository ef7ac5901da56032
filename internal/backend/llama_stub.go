//go:build !llama

package backend

import "mintai/internal/tuning"

// Without the 'llama' tag the runtime refuses to load, keeping default
// builds CGO-free without pretending to generate text.

type Llama struct{}

func NewLlama() Backend { return Llama{} }

func (Llama) Name() string      { return "llama.cpp (not built)" }
func (Llama) Available() bool   { return false }
func (Llama) Accelerated() bool { return tuning.AcceleratedBuild }

func (Llama) SessionDefaults() tuning.SessionParams {
	return tuning.SessionParams{ContextLength: 2048, BatchSize: 2048}
}

func (Llama) Load(path string, p tuning.LoadParams) (Model, error) {
	return nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}
