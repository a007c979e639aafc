package lbvh

import (
	"math/bits"
	"runtime"
	"sync"
)

// combinedKey packs a sorted triangle's 32-bit Morton code and its
// original (pre-sort) triangle id into one 64-bit key, so that the
// longest-common-prefix operations the Karras construction depends on
// automatically disambiguate duplicate Morton codes by falling through to
// the id bits.
func combinedKey(code uint32, id int32) uint64 {
	return uint64(code)<<32 | uint64(uint32(id))
}

// delta returns the length of the common binary prefix of keys[i] and
// keys[j], or -1 if j is out of [0, len(keys)-1].
func delta(keys []uint64, i, j int) int {
	if j < 0 || j >= len(keys) {
		return -1
	}
	return bits.LeadingZeros64(keys[i] ^ keys[j])
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	return 1
}

// determineRange finds the range [first,last] of leaves internal node i is
// the root of, per Karras 2012 ("Maximizing Parallelism in the
// Construction of BVHs, Octrees, and k-d Trees"), section "Binary Radix
// Trees".
func determineRange(keys []uint64, i int) (first, last int) {
	n := len(keys)
	if i == 0 {
		return 0, n - 1
	}

	dLeft := delta(keys, i, i-1)
	dRight := delta(keys, i, i+1)
	d := sign(dRight - dLeft)

	deltaMin := delta(keys, i, i-d)

	lmax := 2
	for delta(keys, i, i+lmax*d) > deltaMin {
		lmax *= 2
	}

	l := 0
	for t := lmax / 2; t >= 1; t /= 2 {
		if delta(keys, i, i+(l+t)*d) > deltaMin {
			l += t
		}
	}
	j := i + l*d

	if i < j {
		return i, j
	}
	return j, i
}

// findSplit finds the index gamma such that internal node i's two children
// cover [first,gamma] and [gamma+1,last].
func findSplit(keys []uint64, first, last int) int {
	commonPrefix := delta(keys, first, last)
	split := first
	step := last - first
	for {
		step = (step + 1) >> 1
		newSplit := split + step
		if newSplit < last {
			if delta(keys, first, newSplit) > commonPrefix {
				split = newSplit
			}
		}
		if step <= 1 {
			break
		}
	}
	return split
}

// buildRadixTree constructs the N-1 internal nodes of the Karras radix
// tree over keys (already stably sorted), wiring Left/Right/Parent on both
// Internals and Leaves. Internal node indices are computed independently,
// spread across up to workers goroutines via parallelFor.
func buildRadixTree(keys []uint64, leaves []Node, internals []Node, workers int) {
	n := len(keys)
	if n < 2 {
		return
	}

	parallelFor(n-1, workers, func(i int) {
		first, last := determineRange(keys, i)
		split := findSplit(keys, first, last)

		var leftRef, rightRef int32
		if split == first {
			leftRef = encodeLeaf(int32(split))
			leaves[split].Parent = int32(i)
		} else {
			leftRef = encodeInternal(int32(split))
			internals[split].Parent = int32(i)
		}

		if split+1 == last {
			rightRef = encodeLeaf(int32(split + 1))
			leaves[split+1].Parent = int32(i)
		} else {
			rightRef = encodeInternal(int32(split + 1))
			internals[split+1].Parent = int32(i)
		}

		internals[i].Left = leftRef
		internals[i].Right = rightRef
		internals[i].IsLeaf = false
	})

	internals[0].Parent = noParent
}

// parallelFor runs fn(i) for i in [0,n) across up to workers goroutines
// using a jobs channel and a WaitGroup. workers<=0 means runtime.NumCPU().
// Unlike query.dispatch/marcher.MarchBatch, this helper does not chunk by
// BlockWidth: it is used on small per-call-scoped slices (worker-partial
// reductions, per-triangle steps) where a 256-wide default chunk would
// collapse the parallel step to a single goroutine far more often than the
// per-ray batch loops BVHX_BLOCK_WIDTH is meant to tune.
func parallelFor(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}
	wg.Wait()
}
