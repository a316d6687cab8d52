// Package sysmon provides system-wide CPU and memory sampling and the
// process resource figures shown in the run summary.
package sysmon

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// AvailableMemory returns the memory the OS reports as available for new
// allocations, in bytes.
func AvailableMemory() (uint64, error) {
	vmem, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("reading virtual memory: %w", err)
	}
	return vmem.Available, nil
}

// CPUTime is the user and system CPU time consumed by a process.
type CPUTime struct {
	User   time.Duration
	System time.Duration
}

// Total returns user plus system time.
func (c CPUTime) Total() time.Duration { return c.User + c.System }

// Sub returns the CPU time spent between an earlier snapshot and c.
func (c CPUTime) Sub(earlier CPUTime) CPUTime {
	return CPUTime{User: c.User - earlier.User, System: c.System - earlier.System}
}

// ProcessCPUTime returns the CPU time consumed so far by the current process.
func ProcessCPUTime() (CPUTime, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return CPUTime{}, fmt.Errorf("opening current process: %w", err)
	}
	times, err := p.Times()
	if err != nil {
		return CPUTime{}, fmt.Errorf("reading process times: %w", err)
	}
	return CPUTime{
		User:   seconds(times.User),
		System: seconds(times.System),
	}, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
