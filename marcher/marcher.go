// Package marcher implements tetrahedral ray marching: given a ray that
// starts inside a known tetrahedron of a volumetric mesh, it walks through
// adjacent tetrahedra via shared faces, emitting uniformly t-spaced
// samples tagged with the tetrahedron containing them and their
// barycentric coordinates within it.
package marcher

import (
	"math"
	"runtime"
	"sync"

	"github.com/deadsy/bvhx/internal/logx"
	"github.com/deadsy/bvhx/lbvh"
	"github.com/deadsy/bvhx/mesh"
	"github.com/deadsy/bvhx/primitive"
	"github.com/deadsy/bvhx/vec3"
)

// MaxStartT resolves the open question around the marcher's
// `start_t > 10.0` caller-contract early exit: rather than a hidden magic
// number, it is this exported, package-wide reassignable var (see
// DESIGN.md). Rays whose start_t exceeds MaxStartT emit zero samples.
var MaxStartT = 10.0

// Sample is one marched sample: a position, the tetrahedron containing
// it, its barycentric coordinates within that tetrahedron, and the t
// range of ray parameter it was taken over.
type Sample struct {
	Point      vec3.Vec
	TetraIndex int32
	Bary       primitive.TetraBary
	TStart     float64
	TEnd       float64
}

// emptySample is the sentinel a sample slot retains when it was never
// written: slots beyond the emitted count keep tetra_index = -1.
func emptySample() Sample {
	return Sample{TetraIndex: -1}
}

// March walks the ray (origin, dir) starting at t=startT inside
// tets[startTet], stepping by dt, emitting at most maxSamples samples
// into a fixed-length slice. topo is the per-tetra face-adjacency table;
// topo[i][f] is the tetra sharing face f of tets[i], or -1 on the mesh
// boundary.
func March(tets mesh.TetraBatch, topo mesh.Topology, startTet int32, startT, dt float64, maxSamples int, origin, dir vec3.Vec) []Sample {
	samples := make([]Sample, maxSamples)
	for i := range samples {
		samples[i] = emptySample()
	}

	if startT > MaxStartT {
		logx.Debugf("marcher: start_t=%v exceeds MaxStartT=%v, emitting zero samples", startT, MaxStartT)
		return samples
	}
	if startTet < 0 || int(startTet) >= len(tets) || maxSamples <= 0 {
		return samples
	}

	t := startT
	current := startTet
	previous := startTet
	next, exitT, ok := findExit(tets, topo, current, previous, origin, dir)

	for count := 0; count < maxSamples; count++ {
		p := origin.Add(dir.MulScalar(t))
		bary := primitive.TetraBarycentric(p, tets[current])
		samples[count] = Sample{
			Point:      p,
			TetraIndex: current,
			Bary:       bary,
			TStart:     t,
			TEnd:       t + dt,
		}

		t += dt
		if t > exitT {
			if !ok {
				logx.Debugf("marcher: ray left mesh at tetra %d after %d samples", current, count+1)
				return samples
			}
			previous = current
			current = next
			next, exitT, ok = findExit(tets, topo, current, previous, origin, dir)
		}
	}
	return samples
}

// findExit tests the ray against current's four faces, considering only
// neighbors that are neither -1 (mesh boundary) nor previous (the face
// just entered through), and returns the neighbor hit at the smallest
// finite positive t, ties broken by lowest face-iteration index. ok is
// false if no such neighbor face is hit (the ray leaves the mesh here).
func findExit(tets mesh.TetraBatch, topo mesh.Topology, current, previous int32, origin, dir vec3.Vec) (next int32, exitT float64, ok bool) {
	tet := tets[current]
	nb := topo[current]
	best := math.Inf(1)
	bestNext := int32(-1)

	for f := 0; f < 4; f++ {
		other := nb[f]
		if other == -1 || other == previous {
			continue
		}
		a, b, c := tet.Face(f)
		r := primitive.RayTriangle(origin, dir, a, b, c)
		if !r.Ok || r.T <= 0 {
			continue
		}
		if r.T < best {
			best = r.T
			bestNext = other
		}
	}
	if bestNext == -1 {
		return -1, 0, false
	}
	return bestNext, best, true
}

// MarchRay is one batched marching request: the usual March parameters,
// minus the shared tets/topo/dt/maxSamples which apply across a whole
// batch.
type MarchRay struct {
	StartTet int32
	StartT   float64
	Origin   vec3.Vec
	Dir      vec3.Vec
}

// MarchBatch runs March once per ray across a bounded goroutine pool,
// chunked: each goroutine claims one BlockWidth-sized contiguous range of
// rays at a time rather than one ray per channel receive, so
// BVHX_BLOCK_WIDTH sizes the batch chunk for this ray-parallel loop.
// workers<=0 means runtime.NumCPU().
func MarchBatch(tets mesh.TetraBatch, topo mesh.Topology, rays []MarchRay, dt float64, maxSamples, workers int) [][]Sample {
	out := make([][]Sample, len(rays))
	n := len(rays)
	if n == 0 {
		return out
	}
	logx.Debugf("marcher: batch marching n=%d workers=%d", n, workers)
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
		for i, r := range rays {
			out[i] = March(tets, topo, r.StartTet, r.StartT, dt, maxSamples, r.Origin, r.Dir)
		}
		return out
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
					r := rays[i]
					out[i] = March(tets, topo, r.StartTet, r.StartT, dt, maxSamples, r.Origin, r.Dir)
				}
			}
		}()
	}
	wg.Wait()
	return out
}
