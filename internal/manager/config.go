package manager

import (
	"time"

	"github.com/rs/zerolog"

	"mintai/internal/backend"
	"mintai/internal/download"
	"mintai/internal/modelcache"
	"mintai/internal/modelpath"
	"mintai/internal/tuning"
)

// Config encapsulates all tunables for Manager construction.
// Zero values are replaced by package defaults in NewWithConfig.
type Config struct {
	// Backend defaults to the go-llama.cpp runtime (a stub without the 'llama' tag).
	Backend backend.Backend
	// Paths resolves the default model path.
	Paths modelpath.Resolver
	// Tuner derives load and session parameters.
	Tuner tuning.Tuner
	// Cache holds the loaded model; nil means a fresh process-wide slot.
	Cache ModelCache
	// Limits cap how much of a token stream one request consumes.
	Limits backend.Limits
	// Fetcher downloads the default model; nil uses download.DefaultURL.
	Fetcher Fetcher
	// ExpectedModelBytes is reported in runtime status (0 = unknown).
	ExpectedModelBytes int64
	Log                zerolog.Logger
	Publisher          EventPublisher
}

// NewWithConfig constructs a Manager from Config.
func NewWithConfig(cfg Config) *Manager {
	m := &Manager{
		backend:       cfg.Backend,
		paths:         cfg.Paths,
		tuner:         cfg.Tuner,
		cache:         cfg.Cache,
		fetcher:       cfg.Fetcher,
		limits:        cfg.Limits,
		expectedBytes: cfg.ExpectedModelBytes,
		log:           cfg.Log,
		publisher:     cfg.Publisher,
		startTime:     time.Now(),
	}
	if m.backend == nil {
		m.backend = backend.NewLlama()
	}
	if m.cache == nil {
		m.cache = modelcache.New[*Handle]()
	}
	if m.limits.MaxTokens <= 0 {
		m.limits.MaxTokens = backend.DefaultLimits.MaxTokens
	}
	if m.limits.MaxChars <= 0 {
		m.limits.MaxChars = backend.DefaultLimits.MaxChars
	}
	if m.fetcher == nil {
		m.fetcher = download.New(download.DefaultURL, m.log)
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	return m
}
