//go:build linux

package chudnovsky

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// availableCPUs counts the CPUs in the process affinity mask, which honors
// taskset and cgroup cpusets.
func availableCPUs() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return runtime.NumCPU()
	}
	if n := set.Count(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}
