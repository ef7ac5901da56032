package tuning

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func envOf(kv map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := kv[k]
		return v, ok
	}
}

func boolPtr(b bool) *bool { return &b }

func TestLoadDefaults(t *testing.T) {
	cpu := Tuner{Getenv: envOf(nil), Accelerated: boolPtr(false)}
	require.Equal(t, LoadParams{}, cpu.Load())

	gpu := Tuner{Getenv: envOf(nil), Accelerated: boolPtr(true)}
	p := gpu.Load()
	require.True(t, p.OffloadsAll())
	require.Equal(t, uint32(0), p.MainGPU)
}

func TestLoadEnvOverrides(t *testing.T) {
	tu := Tuner{
		Getenv:      envOf(map[string]string{EnvGPULayers: "12", EnvMainGPU: " 1 "}),
		Accelerated: boolPtr(true),
	}
	require.Equal(t, LoadParams{GPULayers: 12, MainGPU: 1}, tu.Load())

	// An explicit zero disables acceleration even on accelerated builds.
	tu.Getenv = envOf(map[string]string{EnvGPULayers: "0"})
	require.Equal(t, uint32(0), tu.Load().GPULayers)
}

func TestLoadMalformedEnvIgnored(t *testing.T) {
	for _, v := range []string{"", "abc", "-3", "1.5", "99999999999"} {
		tu := Tuner{
			Getenv:      envOf(map[string]string{EnvGPULayers: v, EnvMainGPU: v}),
			Accelerated: boolPtr(true),
		}
		p := tu.Load()
		require.True(t, p.OffloadsAll(), "value %q", v)
		require.Equal(t, uint32(0), p.MainGPU, "value %q", v)
	}
}

func TestCPUCopy(t *testing.T) {
	p := LoadParams{GPULayers: AllLayers, MainGPU: 2}
	require.Equal(t, LoadParams{MainGPU: 2}, p.CPU())
	require.True(t, p.OffloadsAll())
}

func TestThreadsFor(t *testing.T) {
	cases := map[int]int{-1: 1, 0: 1, 1: 1, 2: 1, 8: 7, 16: 15}
	for in, want := range cases {
		require.Equal(t, want, ThreadsFor(in), "cores=%d", in)
	}
}

func TestSessionClamps(t *testing.T) {
	cases := []struct {
		base     SessionParams
		ctx, bat int
	}{
		{SessionParams{ContextLength: 0, BatchSize: 0}, 512, 128},
		{SessionParams{ContextLength: 100, BatchSize: 64}, 512, 128},
		{SessionParams{ContextLength: 1024, BatchSize: 256}, 1024, 256},
		{SessionParams{ContextLength: 4096, BatchSize: 2048}, 2048, 512},
		{SessionParams{ContextLength: -5, BatchSize: -5}, 512, 128},
	}
	tu := Tuner{Cores: CoreCounterFunc(func() int { return 8 })}
	for _, c := range cases {
		p := tu.Session(c.base)
		require.Equal(t, c.ctx, p.ContextLength)
		require.Equal(t, c.bat, p.BatchSize)
		require.Equal(t, p.BatchSize, p.MicroBatchSize)
		require.Equal(t, 7, p.Threads)
		require.Equal(t, p.Threads, p.BatchThreads)
	}
}

func TestSessionSingleCore(t *testing.T) {
	tu := Tuner{Cores: CoreCounterFunc(func() int { return 1 })}
	p := tu.Session(SessionParams{ContextLength: 2048, BatchSize: 512})
	require.Equal(t, 1, p.Threads)
	require.Equal(t, 1, p.BatchThreads)
}

func TestHostCoresPositive(t *testing.T) {
	require.GreaterOrEqual(t, HostCores{}.PhysicalCores(), 1)
}
