// Package backendtest provides an in-memory backend.Backend for tests of the
// packages that drive a model. It loads nothing from disk and records every
// call it receives.
package backendtest

import (
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mintai/internal/backend"
	"mintai/internal/tuning"
)

// LoadCall records one Load invocation.
type LoadCall struct {
	Path   string
	Params tuning.LoadParams
}

// Backend is a scripted backend. Configure fields before first use.
type Backend struct {
	// Accel is reported by Accelerated.
	Accel bool
	// Defaults is returned by SessionDefaults.
	Defaults tuning.SessionParams
	// AccelErr fails loads with GPULayers > 0.
	AccelErr error
	// CPUErr fails loads with GPULayers == 0.
	CPUErr error
	// IngestErr fails prompt ingestion.
	IngestErr error
	// StreamErr ends every stream with this error.
	StreamErr error
	// Script produces the fragments for a prompt. Nil echoes
	// "<model file>:" followed by the prompt's words.
	Script func(path, prompt string) []string
	// TokenDelay slows every fragment down.
	TokenDelay time.Duration
	// LoadDelay slows every Load down.
	LoadDelay time.Duration

	mu       sync.Mutex
	loads    []LoadCall
	sessions []tuning.SessionParams

	active    atomic.Int32
	maxActive atomic.Int32
	pushed    atomic.Int64
}

var _ backend.Backend = (*Backend)(nil)

func (b *Backend) Name() string      { return "fake" }
func (b *Backend) Available() bool   { return true }
func (b *Backend) Accelerated() bool { return b.Accel }

func (b *Backend) SessionDefaults() tuning.SessionParams { return b.Defaults }

func (b *Backend) Load(path string, p tuning.LoadParams) (backend.Model, error) {
	if b.LoadDelay > 0 {
		time.Sleep(b.LoadDelay)
	}
	b.mu.Lock()
	b.loads = append(b.loads, LoadCall{Path: path, Params: p})
	b.mu.Unlock()
	if p.GPULayers > 0 && b.AccelErr != nil {
		return nil, b.AccelErr
	}
	if p.GPULayers == 0 && b.CPUErr != nil {
		return nil, b.CPUErr
	}
	return &model{b: b, path: path}, nil
}

// Loads returns a copy of the recorded Load calls.
func (b *Backend) Loads() []LoadCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]LoadCall(nil), b.loads...)
}

// Sessions returns the parameters of every session opened so far.
func (b *Backend) Sessions() []tuning.SessionParams {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]tuning.SessionParams(nil), b.sessions...)
}

// Active is the number of open sessions.
func (b *Backend) Active() int { return int(b.active.Load()) }

// MaxActive is the highest number of sessions ever open at the same time.
func (b *Backend) MaxActive() int { return int(b.maxActive.Load()) }

// Pushed is the total number of fragments handed to consumers.
func (b *Backend) Pushed() int64 { return b.pushed.Load() }

func (b *Backend) script(path, prompt string) []string {
	if b.Script != nil {
		return b.Script(path, prompt)
	}
	out := []string{filepath.Base(path) + ":"}
	for _, w := range strings.Fields(prompt) {
		out = append(out, " "+w)
	}
	return out
}

type model struct {
	b    *Backend
	path string
}

func (m *model) NewSession(p tuning.SessionParams) (backend.Session, error) {
	b := m.b
	n := b.active.Add(1)
	for {
		cur := b.maxActive.Load()
		if n <= cur || b.maxActive.CompareAndSwap(cur, n) {
			break
		}
	}
	b.mu.Lock()
	b.sessions = append(b.sessions, p)
	b.mu.Unlock()
	return &session{m: m}, nil
}

type session struct {
	m      *model
	prompt string
	stream *backend.PushStream
	closed bool
}

func (s *session) Ingest(prompt string) error {
	if s.m.b.IngestErr != nil {
		return s.m.b.IngestErr
	}
	s.prompt = prompt
	return nil
}

// Complete ignores maxTokens so that the consumer's own cap is observable.
func (s *session) Complete(maxTokens int) (backend.TokenStream, error) {
	b := s.m.b
	toks := b.script(s.m.path, s.prompt)
	st := backend.NewPushStream()
	s.stream = st
	go func() {
		for _, tok := range toks {
			if b.TokenDelay > 0 {
				time.Sleep(b.TokenDelay)
			}
			if !st.Push(tok) {
				break
			}
			b.pushed.Add(1)
		}
		st.Finish(b.StreamErr)
	}()
	return st, nil
}

func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.stream != nil {
		_ = s.stream.Close()
	}
	s.m.b.active.Add(-1)
	return nil
}
