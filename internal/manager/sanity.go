package manager

import "mintai/pkg/types"

// PreflightReport describes whether generation can work at all.
type PreflightReport struct {
	Backend      string            `json:"backend"`
	BackendBuilt bool              `json:"backend_built"`
	Accelerated  bool              `json:"accelerated"`
	Model        types.ModelStatus `json:"model"`
	Error        string            `json:"error,omitempty"`
}

// Preflight checks the runtime and the default model file without loading.
// It does not mutate state and is safe to call at any time.
func (m *Manager) Preflight() PreflightReport {
	r := PreflightReport{
		Backend:      m.backend.Name(),
		BackendBuilt: m.backend.Available(),
		Accelerated:  m.backend.Accelerated(),
		Model:        m.paths.Status(""),
	}
	switch {
	case !r.BackendBuilt:
		r.Error = "inference runtime not built into this binary"
	case !r.Model.Exists:
		r.Error = ModelNotFoundError{Path: r.Model.Path}.Error()
	}
	return r
}
