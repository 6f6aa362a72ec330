package util

import "runtime"

// WorkerCount returns the worker count for parallel file loading.
//
// Twice the core count keeps workers busy while others block on IO, with a
// floor of 2 and a cap of 16 since token documents are small.
func WorkerCount() int {
	n := runtime.NumCPU() * 2
	if n < 2 {
		n = 2
	}
	if n > 16 {
		n = 16
	}
	return n
}

// WorkerCountWithOverride returns override when positive, otherwise
// WorkerCount. The override exists for tests and tuning.
func WorkerCountWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return WorkerCount()
}
