package manager

import (
	"time"

	"mintai/internal/common/fsutil"
)

// Acquire returns the process's model, loading it on first demand.
//
// The path (explicit, else the default) must exist even when a model is
// already cached. Once a load has succeeded, every later call gets that model
// whatever path it names.
func (m *Manager) Acquire(explicitPath string) (*Handle, error) {
	path := m.paths.Resolve(explicitPath)
	if !fsutil.PathExists(path) {
		m.log.Info().Str("path", path).Msg("model not found")
		m.publisher.Publish(Event{Name: "model_not_found", Path: path})
		return nil, ModelNotFoundError{Path: path}
	}
	h, err := m.cache.GetOrInit(func() (*Handle, error) { return m.load(path) })
	if err != nil {
		return nil, err
	}
	if h.path != path {
		// TODO: surface this to the caller once the UI can offer a restart.
		m.log.Warn().Str("requested", path).Str("loaded", h.path).
			Msg("model already loaded from another path; restart to switch models")
	}
	return h, nil
}

// load runs inside the cache initializer, at most once at a time.
func (m *Manager) load(path string) (*Handle, error) {
	start := time.Now()
	lp := m.tuner.Load()
	m.log.Info().Str("path", path).Str("backend", m.backend.Name()).
		Uint32("gpu_layers", lp.GPULayers).Uint32("main_gpu", lp.MainGPU).Msg("load start")
	m.publisher.Publish(Event{Name: "load_start", Path: path, Fields: map[string]any{"gpu_layers": lp.GPULayers}})

	out := decideLoad(m.backend, path, lp, m.log)
	modelLoadsTotal.WithLabelValues(out.Kind.String()).Inc()
	dur := time.Since(start)

	if out.Kind == LoadFailed {
		err := LoadFailedError{Path: path, Causes: out.Causes}
		m.log.Error().Err(err).Str("path", path).Dur("dur", dur).Msg("load failed")
		m.publisher.Publish(Event{Name: "load_failed", Path: path, Fields: map[string]any{"error": err.Error()}})
		return nil, err
	}
	if out.Kind == LoadFellBack {
		m.publisher.Publish(Event{Name: "load_fell_back", Path: path, Fields: map[string]any{"error": out.Causes[0].Error()}})
	}
	m.log.Info().Str("path", path).Str("outcome", out.Kind.String()).Dur("dur", dur).Msg("load ready")
	m.publisher.Publish(Event{Name: "load_ready", Path: path, Fields: map[string]any{
		"dur_ms":     int(dur / time.Millisecond),
		"gpu_layers": out.Params.GPULayers,
		"fell_back":  out.Kind == LoadFellBack,
	}})
	return newHandle(out.Model, path, out.Params, out.Kind == LoadFellBack), nil
}
