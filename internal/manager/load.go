package manager

import (
	"fmt"

	"github.com/rs/zerolog"

	"mintai/internal/backend"
	"mintai/internal/tuning"
)

// decideLoad tries an accelerated load when acceleration is compiled in and
// at least one layer is requested, then falls back to a processor-only load.
// It only tags the outcome; caching is the caller's business.
func decideLoad(b backend.Backend, path string, lp tuning.LoadParams, log zerolog.Logger) LoadOutcome {
	if !b.Accelerated() || lp.GPULayers == 0 {
		cpu := lp.CPU()
		m, err := b.Load(path, cpu)
		if err != nil {
			return LoadOutcome{Kind: LoadFailed, Params: cpu, Causes: []error{err}}
		}
		return LoadOutcome{Kind: LoadSucceeded, Model: m, Params: cpu}
	}

	m, gpuErr := b.Load(path, lp)
	if gpuErr == nil {
		return LoadOutcome{Kind: LoadSucceeded, Model: m, Params: lp}
	}
	log.Warn().Err(gpuErr).Str("path", path).Uint32("gpu_layers", lp.GPULayers).
		Msg("accelerated load failed, falling back to cpu")

	cpu := lp.CPU()
	m, cpuErr := b.Load(path, cpu)
	if cpuErr != nil {
		return LoadOutcome{
			Kind:   LoadFailed,
			Params: cpu,
			Causes: []error{
				fmt.Errorf("GPU failed: %w", gpuErr),
				fmt.Errorf("CPU failed: %w", cpuErr),
			},
		}
	}
	return LoadOutcome{Kind: LoadFellBack, Model: m, Params: cpu, Causes: []error{gpuErr}}
}
