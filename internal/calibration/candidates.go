package calibration

import "sort"

// MinCalibrationDigits keeps trials long enough to time reliably.
const MinCalibrationDigits = 10_000

// GenerateWorkerCounts returns the worker counts to try for a machine with
// maxWorkers usable CPUs: the powers of two below maxWorkers, maxWorkers
// itself, and 1.5× the CPU count when oversubscription is allowed by
// limit. The result is sorted and free of duplicates.
func GenerateWorkerCounts(maxWorkers, limit int) []int {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	seen := map[int]bool{}
	var counts []int
	add := func(n int) {
		if n >= 1 && (limit <= 0 || n <= limit) && !seen[n] {
			seen[n] = true
			counts = append(counts, n)
		}
	}
	for n := 1; n < maxWorkers; n *= 2 {
		add(n)
	}
	add(maxWorkers)
	if maxWorkers > 1 {
		add(maxWorkers + maxWorkers/2)
	}
	sort.Ints(counts)
	return counts
}
