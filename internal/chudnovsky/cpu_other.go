//go:build !linux

package chudnovsky

import "runtime"

func availableCPUs() int {
	return runtime.NumCPU()
}
