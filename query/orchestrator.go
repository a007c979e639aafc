package query

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/deadsy/bvhx/internal/logx"
	"github.com/deadsy/bvhx/lbvh"
	"github.com/deadsy/bvhx/mesh"
	"github.com/deadsy/bvhx/morton"
	"github.com/deadsy/bvhx/traverse"
	"github.com/deadsy/bvhx/vec3"
)

// Ray is a query ray: a point the ray starts at and a (not necessarily
// normalized) direction.
type Ray struct {
	Origin vec3.Vec
	Dir    vec3.Vec
}

// Nearest finds, for every point in points[i], the closest point on
// batch[i]'s triangles, one *lbvh.Tree built per batch element. ctx is
// checked between batch elements only — the core traversal itself is
// never cancellable.
func Nearest(ctx context.Context, batch [][]mesh.Triangle, points [][]vec3.Vec, opts Options) ([][]traverse.Result, error) {
	if err := opts.Capacity.Validate(); err != nil {
		return nil, err
	}
	out := make([][]traverse.Result, len(batch))
	for i := range batch {
		if err := ctx.Err(); err != nil {
			logx.Debugf("query: Nearest cancelled at batch element %d/%d: %v", i, len(batch), err)
			return out, err
		}
		tree := lbvh.Build(batch[i], opts.Workers)
		out[i] = nearestOne(tree, batch[i], points[i], opts)
	}
	return out, nil
}

// RayNearest is Nearest's ray-query counterpart.
func RayNearest(ctx context.Context, batch [][]mesh.Triangle, rays [][]Ray, opts Options) ([][]traverse.Result, error) {
	if err := opts.Capacity.Validate(); err != nil {
		return nil, err
	}
	out := make([][]traverse.Result, len(batch))
	for i := range batch {
		if err := ctx.Err(); err != nil {
			logx.Debugf("query: RayNearest cancelled at batch element %d/%d: %v", i, len(batch), err)
			return out, err
		}
		tree := lbvh.Build(batch[i], opts.Workers)
		out[i] = rayNearestOne(tree, batch[i], rays[i], opts)
	}
	return out, nil
}

func nearestOne(tree *lbvh.Tree, tris []mesh.Triangle, points []vec3.Vec, opts Options) []traverse.Result {
	query := func(p vec3.Vec) traverse.Result {
		var r traverse.Result
		var err error
		if opts.Traversal == BestFirst {
			r, err = traverse.NearestPointBestFirst(tree, tris, p, opts.Capacity)
		} else {
			r, err = traverse.NearestPoint(tree, tris, p, opts.Capacity)
		}
		if err != nil {
			panic(err) // opts.Capacity was already validated by the caller
		}
		return r
	}

	n := len(points)
	out := make([]traverse.Result, n)
	if !opts.Reorder {
		dispatch(n, opts.Workers, func(i int) { out[i] = query(points[i]) })
		return out
	}

	order := mortonOrderPoints(points)
	scratch := make([]traverse.Result, n)
	dispatch(n, opts.Workers, func(sortedIdx int) {
		scratch[sortedIdx] = query(points[order[sortedIdx]])
	})
	for sortedIdx, origIdx := range order {
		out[origIdx] = scratch[sortedIdx]
	}
	return out
}

func rayNearestOne(tree *lbvh.Tree, tris []mesh.Triangle, rays []Ray, opts Options) []traverse.Result {
	query := func(r Ray) traverse.Result {
		var res traverse.Result
		var err error
		if opts.Traversal == BestFirst {
			res, err = traverse.NearestRayHitBestFirst(tree, tris, r.Origin, r.Dir, opts.Capacity)
		} else {
			res, err = traverse.NearestRayHit(tree, tris, r.Origin, r.Dir, opts.Capacity)
		}
		if err != nil {
			panic(err)
		}
		return res
	}

	n := len(rays)
	out := make([]traverse.Result, n)
	if !opts.Reorder {
		dispatch(n, opts.Workers, func(i int) { out[i] = query(rays[i]) })
		return out
	}

	order := mortonOrderRays(rays)
	scratch := make([]traverse.Result, n)
	dispatch(n, opts.Workers, func(sortedIdx int) {
		scratch[sortedIdx] = query(rays[order[sortedIdx]])
	})
	for sortedIdx, origIdx := range order {
		out[origIdx] = scratch[sortedIdx]
	}
	return out
}

// mortonOrderPoints returns a stable permutation of points sorted by
// Morton code, normalized into morton.QueryCube.
func mortonOrderPoints(points []vec3.Vec) []int {
	codes := make([]uint32, len(points))
	for i, p := range points {
		codes[i] = morton.Encode(morton.Normalize(p, morton.QueryCube))
	}
	return stableOrderByCode(codes)
}

// mortonOrderRays orders by the Morton code of each ray's origin.
func mortonOrderRays(rays []Ray) []int {
	codes := make([]uint32, len(rays))
	for i, r := range rays {
		codes[i] = morton.Encode(morton.Normalize(r.Origin, morton.QueryCube))
	}
	return stableOrderByCode(codes)
}

func stableOrderByCode(codes []uint32) []int {
	order := make([]int, len(codes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return codes[order[a]] < codes[order[b]]
	})
	return order
}

// dispatch runs fn(i) for i in [0,n) across a bounded goroutine pool, the
// same jobs-channel/WaitGroup worker pool shape lbvh.parallelFor uses, but
// chunked: each goroutine claims one BlockWidth-sized contiguous range of
// indices at a time rather than one index per channel receive, so
// BVHX_BLOCK_WIDTH sizes the batch chunk for this ray-parallel loop.
// workers<=0 means runtime.NumCPU().
func dispatch(n, workers int, fn func(i int)) {
	if n == 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	chunk := lbvh.BlockWidth()
	if chunk <= 0 {
		chunk = 1
	}
	numChunks := (n + chunk - 1) / chunk

	if workers > numChunks {
		workers = numChunks
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	jobs := make(chan int, numChunks)
	for c := 0; c < numChunks; c++ {
		jobs <- c
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for c := range jobs {
				start := c * chunk
				end := start + chunk
				if end > n {
					end = n
				}
				for i := start; i < end; i++ {
					fn(i)
				}
			}
		}()
	}
	wg.Wait()
}
