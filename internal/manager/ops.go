package manager

import (
	"context"

	"mintai/internal/download"
)

// Preload loads the default model in the background so the first request
// does not pay for it. A failure is only logged: nothing is cached and the
// next request tries again. The returned channel yields the outcome once.
func (m *Manager) Preload() <-chan error {
	done := make(chan error, 1)
	go func() {
		_, err := m.Acquire("")
		if err != nil {
			m.log.Warn().Err(err).Msg("preload failed")
		}
		done <- err
		close(done)
	}()
	return done
}

// DownloadModel fetches the default model file into the models directory and
// returns its path. It does not load the result.
func (m *Manager) DownloadModel(ctx context.Context, progress download.ProgressFunc) (string, error) {
	dest := m.paths.Default()
	m.log.Info().Str("path", dest).Msg("download start")
	m.publisher.Publish(Event{Name: "download_start", Path: dest})
	n, err := m.fetcher.Fetch(ctx, dest, progress)
	if err != nil {
		m.publisher.Publish(Event{Name: "download_failed", Path: dest, Fields: map[string]any{"error": err.Error()}})
		return "", err
	}
	m.publisher.Publish(Event{Name: "download_done", Path: dest, Fields: map[string]any{"bytes": n}})
	return dest, nil
}

// RemoveModel deletes the default model file if present. A model already
// loaded from it stays usable until the process exits.
func (m *Manager) RemoveModel() error {
	path := m.paths.Default()
	if h, ok := m.cache.Get(); ok && h.Path() == path {
		m.log.Warn().Str("path", path).Msg("removing the file of the loaded model")
	}
	if err := download.Remove(path); err != nil {
		return err
	}
	m.publisher.Publish(Event{Name: "model_removed", Path: path})
	return nil
}
