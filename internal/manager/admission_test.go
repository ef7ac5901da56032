package manager

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mintai/internal/backend"
	"mintai/internal/backend/backendtest"
	"mintai/internal/tuning"
)

func newTestHandle(t *testing.T) *Handle {
	t.Helper()
	fb := &backendtest.Backend{}
	model, err := fb.Load("/m.gguf", tuning.LoadParams{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return newHandle(model, "/m.gguf", tuning.LoadParams{}, false)
}

// waitFor polls cond until it holds or the test context expires.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not reached")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestGenerateSerializesSessions(t *testing.T) {
	fb := &backendtest.Backend{TokenDelay: time.Millisecond}
	e := newTestEnv(t, fb, nil)
	e.defaultModel(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.m.Generate(testCtx(t), "one two three four", ""); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("generate: %v", err)
	}
	if got := fb.MaxActive(); got != 1 {
		t.Fatalf("max concurrent sessions=%d, want 1", got)
	}
	if got := len(fb.Sessions()); got != 8 {
		t.Fatalf("sessions=%d, want 8", got)
	}
}

func TestWithReleasesOnErrorAndPanic(t *testing.T) {
	h := newTestHandle(t)
	boom := errors.New("boom")
	if err := h.With(context.Background(), func(backend.Model) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
	func() {
		defer func() { _ = recover() }()
		_ = h.With(context.Background(), func(backend.Model) error { panic("fail") })
	}()
	if h.Inflight() != 0 {
		t.Fatalf("slot still held after panic")
	}
	if err := h.With(context.Background(), func(backend.Model) error { return nil }); err != nil {
		t.Fatalf("slot not reusable: %v", err)
	}
}

func TestWithCanceledWhileWaiting(t *testing.T) {
	h := newTestHandle(t)
	release := make(chan struct{})
	held := make(chan struct{})
	go func() {
		_ = h.With(context.Background(), func(backend.Model) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- h.With(ctx, func(backend.Model) error {
			t.Error("canceled waiter must not run")
			return nil
		})
	}()
	waitFor(t, func() bool { return h.Waiting() == 1 })
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want canceled", err)
	}
	if h.Waiting() != 0 || h.Inflight() != 1 {
		t.Fatalf("waiting=%d inflight=%d", h.Waiting(), h.Inflight())
	}
	close(release)
	waitFor(t, func() bool { return h.Inflight() == 0 })
}

func TestWithServesWaitersInArrivalOrder(t *testing.T) {
	h := newTestHandle(t)
	release := make(chan struct{})
	held := make(chan struct{})
	go func() {
		_ = h.With(context.Background(), func(backend.Model) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = h.With(context.Background(), func(backend.Model) error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}(i)
		want := int32(i + 1)
		waitFor(t, func() bool { return int32(h.Waiting()) == want })
	}
	close(release)
	wg.Wait()
	for i, got := range order {
		if got != i {
			t.Fatalf("order=%v, want arrival order", order)
		}
	}
}

func TestWithHoldsSlotUntilSessionEnds(t *testing.T) {
	h := newTestHandle(t)
	var inside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.With(context.Background(), func(backend.Model) error {
				if inside.Add(1) != 1 {
					t.Error("two callers inside the gate")
				}
				time.Sleep(2 * time.Millisecond)
				inside.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()
}
