package dynamo

import (
	"runtime"
	"sync"
)

// Workers resolves a requested worker count; values below one mean one per CPU.
func Workers(n int) int {
	if n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// ParallelFor executes fn over contiguous chunks of [0, n). Chunk k is handed
// to fn as (k, start, end) so callers can write into per-chunk buffers.
func ParallelFor(n, minChunk, numWorkers int, fn func(chunk, start, end int)) {
	if n <= minChunk || numWorkers <= 1 {
		fn(0, 0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(k, s, e int) {
			defer wg.Done()
			if s < e {
				fn(k, s, e)
			}
		}(w, start, end)
	}

	wg.Wait()
}

// Chunks reports how many chunks ParallelFor will use for the same arguments.
func Chunks(n, minChunk, numWorkers int) int {
	if n <= minChunk || numWorkers <= 1 {
		return 1
	}
	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
