package containers

import (
	"fmt"

	"github.com/tuneinsight/tfhe/utils"
)

// Chunks splits s into len(s)/chunkLen contiguous disjoint windows of exactly
// chunkLen elements each. chunkLen must be positive and divide len(s); a
// violation is a programming error and panics.
func Chunks[E Element](s []E, chunkLen int) [][]E {
	if chunkLen <= 0 {
		panic(fmt.Errorf("cannot Chunks: chunk length %d is not positive", chunkLen))
	}
	if len(s)%chunkLen != 0 {
		panic(fmt.Errorf("cannot Chunks: chunk length %d does not divide buffer length %d", chunkLen, len(s)))
	}
	chunks := make([][]E, len(s)/chunkLen)
	for i := range chunks {
		chunks[i] = s[i*chunkLen : (i+1)*chunkLen : (i+1)*chunkLen]
	}
	return chunks
}

// SplitInto splits s into chunkCount contiguous disjoint windows of equal
// length. chunkCount must divide len(s); a violation is a programming error
// and panics. The degenerate split of an empty buffer into zero chunks yields
// a single zero-length chunk.
func SplitInto[E Element](s []E, chunkCount int) [][]E {
	if chunkCount == 0 && len(s) == 0 {
		return [][]E{s}
	}
	if chunkCount <= 0 {
		panic(fmt.Errorf("cannot SplitInto: chunk count %d is not positive", chunkCount))
	}
	if len(s)%chunkCount != 0 {
		panic(fmt.Errorf("cannot SplitInto: chunk count %d does not divide buffer length %d", chunkCount, len(s)))
	}
	return Chunks(s, len(s)/chunkCount)
}

// SplitAt splits s at mid into the disjoint pair (s[:mid], s[mid:]).
func SplitAt[E Element](s []E, mid int) (left, right []E) {
	if mid < 0 || mid > len(s) {
		panic(fmt.Errorf("cannot SplitAt: index %d out of range [0, %d]", mid, len(s)))
	}
	return s[:mid:mid], s[mid:]
}

// ChunkCount returns the largest chunk count at most max that divides n. It
// sizes the splits of SplitInto and ParSplitInto when the worker count is
// capped, typically by the number of CPUs.
func ChunkCount(n, max int) int {
	for c := utils.Min(max, n); c > 1; c-- {
		if n%c == 0 {
			return c
		}
	}
	return 1
}
