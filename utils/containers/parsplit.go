package containers

import (
	"sync"
)

// ParChunks runs f concurrently over the chunkLen-sized windows of s, one
// goroutine per chunk, and returns once every invocation has completed. The
// windows are mutually disjoint, so f may mutate its chunk freely; f must not
// touch elements outside the chunk it receives. The divisibility contract is
// the one of Chunks.
func ParChunks[E Element](s []E, chunkLen int, f func(chunk int, view []E)) {
	chunks := Chunks(s, chunkLen)
	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for i := range chunks {
		go func(i int) {
			defer wg.Done()
			f(i, chunks[i])
		}(i)
	}
	wg.Wait()
}

// ParSplitInto runs f concurrently over chunkCount equal windows of s, one
// goroutine per chunk, and returns once every invocation has completed. The
// divisibility contract is the one of SplitInto.
func ParSplitInto[E Element](s []E, chunkCount int, f func(chunk int, view []E)) {
	chunks := SplitInto(s, chunkCount)
	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for i := range chunks {
		go func(i int) {
			defer wg.Done()
			f(i, chunks[i])
		}(i)
	}
	wg.Wait()
}

// ParSplitAt returns the same disjoint pair as SplitAt. The halves never
// alias, so both may be handed to concurrent workers.
func ParSplitAt[E Element](s []E, mid int) (left, right []E) {
	return SplitAt(s, mid)
}
