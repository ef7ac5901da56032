package manager

import (
	"time"

	"mintai/internal/registry"
	"mintai/pkg/types"
)

// Status reports the resolved model path and whether it exists. It never
// loads the model.
func (m *Manager) Status(explicitPath string) types.ModelStatus {
	return m.paths.Status(explicitPath)
}

// Ready reports whether a model has been loaded.
func (m *Manager) Ready() bool {
	_, ok := m.cache.Get()
	return ok
}

// ListModels lists GGUF files in the default models directory.
func (m *Manager) ListModels() (types.ModelsResponse, error) {
	dir := m.paths.ModelsDir()
	files, err := registry.NewGGUFScanner(m.paths.ModelFileName()).Scan(dir)
	if err != nil {
		return types.ModelsResponse{}, err
	}
	return types.ModelsResponse{Dir: dir, Models: files}, nil
}

// Runtime builds the response for /runtime.
func (m *Manager) Runtime() types.RuntimeStatus {
	resp := types.RuntimeStatus{
		Backend:           m.backend.Name(),
		Accelerated:       m.backend.Accelerated(),
		Model:             m.paths.Status(""),
		ExpectedSizeBytes: m.expectedBytes,
		UptimeSeconds:     int64(time.Since(m.startTime) / time.Second),
	}
	if h, ok := m.cache.Get(); ok {
		resp.Loaded = true
		resp.LoadedPath = h.Path()
		lp := h.LoadParams()
		resp.Load = &types.LoadInfo{GPULayers: lp.GPULayers, MainGPU: lp.MainGPU, FellBack: h.FellBack()}
		resp.Waiting = h.Waiting()
		resp.Inflight = h.Inflight()
	}
	return resp
}
