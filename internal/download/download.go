// Package download fetches the default model file into the models directory
// and removes it again. It sits outside the inference path: nothing here
// touches a loaded model.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"go.uber.org/multierr"
)

const (
	// DefaultURL is the quantized model offered to users without one.
	DefaultURL = "https://huggingface.co/bartowski/WizardLM-2-7B-abliterated-GGUF/resolve/main/WizardLM-2-7B-abliterated-Q4_K_M.gguf?download=true"
	// ExpectedSizeBytes is the approximate size of the file at DefaultURL.
	ExpectedSizeBytes int64 = 4_370_000_000
)

// ProgressFunc receives the bytes written so far and the total, which is -1
// when the server does not report a length.
type ProgressFunc func(loaded, total int64)

// Fetcher downloads one URL to a destination path. A failed attempt restarts
// from zero; a partial file never appears at the destination.
type Fetcher struct {
	URL      string
	Client   *http.Client
	Log      zerolog.Logger
	Attempts uint64
	Backoff  time.Duration
	// ProgressEvery throttles progress callbacks by bytes; 0 means 1 MiB.
	ProgressEvery int64
}

// New returns a Fetcher for url with default retry settings.
func New(url string, log zerolog.Logger) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	return &Fetcher{URL: url, Client: http.DefaultClient, Log: log, Attempts: 3, Backoff: 500 * time.Millisecond}
}

// statusError is a non-2xx response. 5xx and 429 are retried.
type statusError struct{ Code int }

func (e statusError) Error() string {
	return fmt.Sprintf("download failed: %d %s", e.Code, http.StatusText(e.Code))
}

func (e statusError) retryable() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

// Fetch writes the body at f.URL to dest and returns the number of bytes.
// Parent directories are created as needed.
func (f *Fetcher) Fetch(ctx context.Context, dest string, progress ProgressFunc) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("create models dir: %w", err)
	}
	attempts := f.Attempts
	if attempts == 0 {
		attempts = 1
	}
	base := f.Backoff
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	b := retry.WithMaxRetries(attempts-1, retry.NewExponential(base))

	var n int64
	var tries int
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		tries++
		var err error
		n, err = f.once(ctx, dest, progress)
		if err == nil {
			return nil
		}
		var se statusError
		if errors.As(err, &se) && !se.retryable() {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		f.Log.Warn().Err(err).Int("attempt", tries).Str("url", f.URL).Msg("download attempt failed")
		return retry.RetryableError(err)
	})
	if err != nil {
		return 0, fmt.Errorf("download %s: attempts %d: %w", f.URL, tries, err)
	}
	f.Log.Info().Str("path", dest).Int64("bytes", n).Msg("download complete")
	return n, nil
}

func (f *Fetcher) once(ctx context.Context, dest string, progress ProgressFunc) (n int64, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return 0, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { err = multierr.Append(err, resp.Body.Close()) }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, statusError{Code: resp.StatusCode}
	}

	pf, err := renameio.TempFile("", dest)
	if err != nil {
		return 0, err
	}
	defer func() { _ = pf.Cleanup() }()

	total := resp.ContentLength
	w := &progressWriter{w: pf, total: total, fn: progress, every: f.ProgressEvery}
	if w.every <= 0 {
		w.every = 1 << 20
	}
	n, err = io.Copy(w, resp.Body)
	if err != nil {
		return 0, err
	}
	if total >= 0 && n != total {
		return 0, fmt.Errorf("short body: got %d of %d bytes", n, total)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return 0, err
	}
	w.report()
	return n, nil
}

type progressWriter struct {
	w      io.Writer
	total  int64
	loaded int64
	last   int64
	every  int64
	fn     ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.loaded += int64(n)
	if p.loaded-p.last >= p.every {
		p.report()
	}
	return n, err
}

func (p *progressWriter) report() {
	p.last = p.loaded
	if p.fn != nil {
		p.fn(p.loaded, p.total)
	}
}

// Remove deletes the model file at path. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
