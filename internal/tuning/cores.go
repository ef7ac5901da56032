package tuning

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// CoreCounter reports the number of physical processor cores.
type CoreCounter interface {
	PhysicalCores() int
}

// CoreCounterFunc adapts a function to CoreCounter.
type CoreCounterFunc func() int

func (f CoreCounterFunc) PhysicalCores() int { return f() }

// HostCores probes the host. Logical CPUs are used when the physical count
// cannot be read (some containers and virtual machines hide topology).
type HostCores struct{}

func (HostCores) PhysicalCores() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
