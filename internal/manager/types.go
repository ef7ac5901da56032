package manager

import (
	"context"

	"mintai/internal/backend"
	"mintai/internal/download"
	"mintai/internal/tuning"
)

// ModelCache is the write-once slot holding the loaded model.
// *modelcache.Cache[*Handle] satisfies it.
type ModelCache interface {
	GetOrInit(init func() (*Handle, error)) (*Handle, error)
	Get() (*Handle, bool)
}

// Fetcher places a downloaded model file at dest.
// *download.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, dest string, progress download.ProgressFunc) (int64, error)
}

// LoadKind tags the outcome of the load decision.
type LoadKind int

const (
	// LoadSucceeded: the first attempt worked.
	LoadSucceeded LoadKind = iota
	// LoadFellBack: the accelerated attempt failed, the processor load worked.
	LoadFellBack
	// LoadFailed: every attempt failed.
	LoadFailed
)

func (k LoadKind) String() string {
	switch k {
	case LoadSucceeded:
		return "succeeded"
	case LoadFellBack:
		return "fell_back"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadOutcome is the result of decideLoad.
type LoadOutcome struct {
	Kind LoadKind
	// Model is set unless Kind is LoadFailed.
	Model backend.Model
	// Params are those of the last attempt.
	Params tuning.LoadParams
	// Causes holds every failed attempt's error, in order.
	Causes []error
}
