package manager

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"mintai/internal/backend"
)

// Generate runs one prompt against the process's model and returns the
// collected text. explicitPath may be empty to use the default model path.
//
// The call blocks for the whole load and generation. ctx only bounds the wait
// for the model; once a session is open it runs to a natural stop.
func (m *Manager) Generate(ctx context.Context, prompt, explicitPath string) (string, error) {
	h, err := m.Acquire(explicitPath)
	if err != nil {
		return "", err
	}

	start := time.Now()
	var out backend.Collected
	err = h.With(ctx, func(model backend.Model) error {
		var err error
		out, err = m.runSession(model, prompt)
		return err
	})
	dur := time.Since(start)
	generationTokens.Add(float64(out.Tokens))

	if err == nil && strings.TrimSpace(out.Text) == "" {
		err = ErrEmptyOutput
	}
	if err != nil {
		generationDuration.WithLabelValues(resultLabel(err)).Observe(dur.Seconds())
		m.log.Info().Err(err).Int("tokens", out.Tokens).Dur("dur", dur).Msg("generate failed")
		m.publisher.Publish(Event{Name: "generate_failed", Path: h.path, Fields: map[string]any{"error": err.Error()}})
		return "", err
	}
	generationDuration.WithLabelValues("ok").Observe(dur.Seconds())
	m.log.Info().Int("tokens", out.Tokens).Int("chars", utf8.RuneCountInString(out.Text)).Str("stop", string(out.Reason)).
		Dur("dur", dur).Msg("generate done")
	m.publisher.Publish(Event{Name: "generate_done", Path: h.path, Fields: map[string]any{
		"tokens": out.Tokens,
		"stop":   string(out.Reason),
	}})
	return out.Text, nil
}

// runSession must be called while holding the model. The session is closed
// on every path, including an abandoned stream.
func (m *Manager) runSession(model backend.Model, prompt string) (backend.Collected, error) {
	params := m.tuner.Session(m.backend.SessionDefaults())
	sess, err := model.NewSession(params)
	if err != nil {
		return backend.Collected{}, GenerationError{Err: fmt.Errorf("open session: %w", err)}
	}
	defer func() { _ = sess.Close() }()

	if err := sess.Ingest(prompt); err != nil {
		return backend.Collected{}, ContextError{Err: err}
	}
	stream, err := sess.Complete(m.limits.MaxTokens)
	if err != nil {
		return backend.Collected{}, GenerationError{Err: err}
	}
	out, err := backend.Collect(stream, m.limits)
	if err != nil {
		if strings.TrimSpace(out.Text) == "" {
			return out, GenerationError{Err: err}
		}
		m.log.Warn().Err(err).Int("tokens", out.Tokens).Msg("stream ended with error, keeping partial output")
	}
	return out, nil
}

func resultLabel(err error) string {
	switch {
	case IsModelNotFound(err):
		return "not_found"
	case IsLoadFailed(err):
		return "load_failed"
	case IsContextError(err):
		return "context"
	case IsEmptyOutput(err):
		return "empty"
	case IsGenerationError(err):
		return "generation"
	default:
		return "error"
	}
}
