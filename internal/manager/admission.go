package manager

import (
	"context"
	"sync/atomic"

	"mintai/internal/backend"
	"mintai/internal/tuning"
)

// Handle wraps the loaded model with a single in-flight slot. Waiters are
// served in arrival order.
type Handle struct {
	model    backend.Model
	path     string
	params   tuning.LoadParams
	fellBack bool

	slot    chan struct{} // size 1: single in-flight session
	waiting atomic.Int32
}

func newHandle(model backend.Model, path string, params tuning.LoadParams, fellBack bool) *Handle {
	return &Handle{
		model:    model,
		path:     path,
		params:   params,
		fellBack: fellBack,
		slot:     make(chan struct{}, 1),
	}
}

// Path is the file the model was loaded from.
func (h *Handle) Path() string { return h.path }

// LoadParams are the parameters of the successful load.
func (h *Handle) LoadParams() tuning.LoadParams { return h.params }

// FellBack reports whether the accelerated load failed first.
func (h *Handle) FellBack() bool { return h.fellBack }

// Waiting is the number of callers queued for the model.
func (h *Handle) Waiting() int { return int(h.waiting.Load()) }

// Inflight is 1 while a caller holds the model.
func (h *Handle) Inflight() int { return len(h.slot) }

// With runs fn with exclusive use of the model and releases it on every
// return path, panics included. ctx bounds only the wait; fn itself is not
// interrupted.
func (h *Handle) With(ctx context.Context, fn func(backend.Model) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.waiting.Add(1)
	gateWaiting.Inc()
	select {
	case h.slot <- struct{}{}:
		h.waiting.Add(-1)
		gateWaiting.Dec()
	case <-ctx.Done():
		h.waiting.Add(-1)
		gateWaiting.Dec()
		return ctx.Err()
	}
	gateInflight.Inc()
	defer func() {
		gateInflight.Dec()
		<-h.slot
	}()
	return fn(h.model)
}
