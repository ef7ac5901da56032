package manager

import (
	"time"

	"github.com/rs/zerolog"

	"mintai/internal/backend"
	"mintai/internal/modelpath"
	"mintai/internal/tuning"
)

type Manager struct {
	backend       backend.Backend
	paths         modelpath.Resolver
	tuner         tuning.Tuner
	cache         ModelCache
	fetcher       Fetcher
	limits        backend.Limits
	expectedBytes int64
	log           zerolog.Logger
	publisher     EventPublisher
	startTime     time.Time
}

// New builds a Manager for b with models resolved by paths.
func New(b backend.Backend, paths modelpath.Resolver, log zerolog.Logger) *Manager {
	// Delegate to NewWithConfig to centralize defaults
	return NewWithConfig(Config{Backend: b, Paths: paths, Log: log})
}

// SetEventPublisher replaces the event sink; nil restores the no-op default.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	m.publisher = p
}

// Paths returns the resolver used for default model paths.
func (m *Manager) Paths() modelpath.Resolver { return m.paths }

// Backend returns the runtime used for loads.
func (m *Manager) Backend() backend.Backend { return m.backend }
