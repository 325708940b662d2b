package solver

import (
	"sync"
	"sync/atomic"
)

// balancedParallelFor executes fn(i) for every i in [0, count), spread
// over at most threadCount goroutines. Workers pull the next index from
// a shared counter, so uneven per-index workloads balance out.
//
// Blocks until every invocation has completed. fn must not touch state
// shared with other indices unless that state is read-only.
func balancedParallelFor(threadCount, count int, fn func(i int)) {
	if threadCount > count {
		threadCount = count
	}
	if threadCount <= 1 {
		for i := 0; i < count; i++ {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(threadCount)
	for t := 0; t < threadCount; t++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= count {
					return
				}
				fn(i)
			}
		}()
	}
	wg.Wait()
}
