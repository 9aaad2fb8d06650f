// Package parallel provides index-range parallelization helpers for
// per-row work such as batch prediction. Chunks are contiguous and
// disjoint, so callers writing to distinct output slots need no
// locking.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits [0, n) into contiguous chunks, one per available
// CPU, runs fn(start, end) on each chunk from its own goroutine and
// blocks until all chunks finish.
func Parallelize(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold behaves like Parallelize for n at or above
// threshold, and runs fn(0, n) on the calling goroutine below it,
// avoiding goroutine overhead for small inputs.
func ParallelizeWithThreshold(n, threshold int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if n < threshold {
		fn(0, n)
		return
	}
	Parallelize(n, fn)
}
