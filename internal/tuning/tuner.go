package tuning

import (
	"os"
	"strconv"
	"strings"
)

// Tuner computes LoadParams and SessionParams. The zero value reads the
// process environment, uses the compiled build mode and probes the host.
type Tuner struct {
	// Getenv looks up an environment variable; nil means os.LookupEnv.
	Getenv func(string) (string, bool)
	// Accelerated overrides the compiled build mode when non-nil.
	Accelerated *bool
	// Cores reports physical cores; nil means HostCores.
	Cores CoreCounter
}

// Default is a Tuner wired to the process environment and host.
func Default() Tuner { return Tuner{} }

func (t Tuner) accelerated() bool {
	if t.Accelerated != nil {
		return *t.Accelerated
	}
	return AcceleratedBuild
}

func (t Tuner) lookupUint(name string) (uint32, bool) {
	get := t.Getenv
	if get == nil {
		get = os.LookupEnv
	}
	v, ok := get(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// Load derives load-time parameters. An explicit MINTAI_GPU_LAYERS wins over
// the build default (all layers on accelerated builds, none otherwise).
func (t Tuner) Load() LoadParams {
	var p LoadParams
	if n, ok := t.lookupUint(EnvGPULayers); ok {
		p.GPULayers = n
	} else if t.accelerated() {
		p.GPULayers = AllLayers
	}
	if n, ok := t.lookupUint(EnvMainGPU); ok {
		p.MainGPU = n
	}
	return p
}

// Session derives per-session parameters from the backend defaults in base.
func (t Tuner) Session(base SessionParams) SessionParams {
	cores := t.Cores
	if cores == nil {
		cores = HostCores{}
	}
	threads := ThreadsFor(cores.PhysicalCores())
	p := base
	p.ContextLength = clamp(base.ContextLength, MinContextLength, MaxContextLength)
	p.BatchSize = clamp(base.BatchSize, MinBatchSize, MaxBatchSize)
	p.MicroBatchSize = p.BatchSize
	p.Threads = threads
	p.BatchThreads = threads
	return p
}

// ThreadsFor leaves one physical core to the host process, never going below one.
func ThreadsFor(physical int) int {
	if physical-1 < 1 {
		return 1
	}
	return physical - 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
