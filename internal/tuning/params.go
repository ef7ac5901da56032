// Package tuning derives load-time and session-time execution parameters for
// the local model from environment overrides, the build mode and the host's
// physical core count.
package tuning

import "math"

// AllLayers asks the backend to offload every layer to the accelerator.
const AllLayers = math.MaxUint32

// Environment overrides read at load time.
const (
	EnvGPULayers = "MINTAI_GPU_LAYERS"
	EnvMainGPU   = "MINTAI_MAIN_GPU"
)

// Session sizing bounds.
const (
	MinContextLength = 512
	MaxContextLength = 2048
	MinBatchSize     = 128
	MaxBatchSize     = 512
)

// LoadParams configure a model load. GPULayers == 0 means a processor-only load.
type LoadParams struct {
	GPULayers uint32 `json:"gpu_layers"`
	MainGPU   uint32 `json:"main_gpu"`
}

// OffloadsAll reports whether the all-layers sentinel is set.
func (p LoadParams) OffloadsAll() bool { return p.GPULayers == AllLayers }

// CPU returns a copy of p with acceleration disabled.
func (p LoadParams) CPU() LoadParams {
	p.GPULayers = 0
	return p
}

// SessionParams configure one inference session.
type SessionParams struct {
	ContextLength  int `json:"context_length"`
	BatchSize      int `json:"batch_size"`
	MicroBatchSize int `json:"micro_batch_size"`
	Threads        int `json:"threads"`
	BatchThreads   int `json:"batch_threads"`
}
