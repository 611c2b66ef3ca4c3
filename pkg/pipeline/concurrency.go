package pipeline

import (
	"runtime"
	"sync"
)

// parallelFor runs work(i) for every i in [0,n) across a worker pool bounded
// by GOMAXPROCS, blocking until all complete. Callers write results into
// per-index slots of a pre-sized slice so output order stays deterministic
// regardless of completion order. It is used inside Stage E, Stage F and
// door assignment; the caller is responsible for a deterministic order.
func parallelFor(n int, work func(i int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			work(i)
		}
		return
	}

	var wg sync.WaitGroup
	next := make(chan int)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range next {
				work(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
}
