package lbvh

import (
	"runtime"
	"sort"
	"sync/atomic"

	"github.com/deadsy/bvhx/internal/logx"
	"github.com/deadsy/bvhx/mesh"
	"github.com/deadsy/bvhx/morton"
	"github.com/deadsy/bvhx/vec3"
)

// Build constructs an LBVH over tris in eight steps: per-triangle AABB,
// scene AABB reduction, Morton codes of normalized centroids, identity
// permutation, stable sort by (code, id), Karras radix tree, leaf fill,
// bottom-up bbox fill via per-parent atomic counters. workers bounds the
// goroutine pool used for the parallel steps (<=0 means runtime.NumCPU(),
// see Options in the query package for the usual caller-facing entry
// point).
//
// Everything Build allocates is scoped to this one call: no node array or
// scratch buffer is retained past the caller's use of the returned *Tree.
func Build(tris []mesh.Triangle, workers int) *Tree {
	n := len(tris)
	logx.Debugf("lbvh: building tree n=%d workers=%d", n, workers)
	tree := &Tree{}
	if n == 0 {
		return tree
	}

	// Step 1: per-triangle AABB (parallel).
	boxes := make([]vec3.Box, n)
	parallelFor(n, workers, func(i int) {
		boxes[i] = tris[i].Box()
	})

	// Step 2: scene AABB reduction (commutative union; partial-per-worker
	// reduce then sequential merge keeps the union race-free without a
	// mutex per element).
	sceneBox := reduceSceneBox(boxes, workers)

	// Step 3: Morton code of each triangle's centroid normalized into the
	// scene AABB.
	codes := make([]uint32, n)
	parallelFor(n, workers, func(i int) {
		codes[i] = morton.Encode(morton.Normalize(tris[i].Centroid(), sceneBox))
	})

	// Step 4: identity permutation of triangle ids.
	ids := make([]int32, n)
	for i := range ids {
		ids[i] = int32(i)
	}

	// Step 5: stable-sort-by-key, tie-broken on triangle id, matching the
	// keys buildRadixTree will use to disambiguate duplicate Morton codes.
	sort.SliceStable(ids, func(i, j int) bool {
		return codes[ids[i]] < codes[ids[j]]
	})

	keys := make([]uint64, n)
	for sortedIdx, triID := range ids {
		keys[sortedIdx] = combinedKey(codes[triID], triID)
	}

	// Step 7 (leaves written before step 6's radix tree references them,
	// since step 6 needs leaves[i].Parent to exist to write into):
	tree.Leaves = make([]Node, n)
	parallelFor(n, workers, func(i int) {
		triID := ids[i]
		tree.Leaves[i] = Node{
			Box:       boxes[triID],
			Tri:       triID,
			LeafIndex: triID,
			IsLeaf:    true,
		}
	})

	if n == 1 {
		// No internal nodes; the single leaf is the root.
		return tree
	}

	tree.Internals = make([]Node, n-1)
	for i := range tree.Internals {
		tree.Internals[i].Tri = -1
		tree.Internals[i].LeafIndex = -1
	}

	// Step 6: Karras radix tree construction.
	buildRadixTree(keys, tree.Leaves, tree.Internals, workers)

	// Step 8: bottom-up bbox fill via one atomic counter per internal node.
	bottomUpFill(tree, workers)

	checkInvariants(tree)
	recordBuild(n)
	logx.Debugf("lbvh: built tree n=%d internals=%d", n, len(tree.Internals))

	return tree
}

func reduceSceneBox(boxes []vec3.Box, workers int) vec3.Box {
	n := len(boxes)
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		box := vec3.EmptyBox()
		for _, b := range boxes {
			box = box.Union(b)
		}
		return box
	}

	partial := make([]vec3.Box, workers)
	for i := range partial {
		partial[i] = vec3.EmptyBox()
	}
	chunk := (n + workers - 1) / workers
	parallelFor(workers, workers, func(w int) {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		b := vec3.EmptyBox()
		for i := start; i < end; i++ {
			b = b.Union(boxes[i])
		}
		partial[w] = b
	})

	box := vec3.EmptyBox()
	for _, b := range partial {
		box = box.Union(b)
	}
	return box
}

// bottomUpFill fills internal-node bounding boxes bottom-up: each leaf
// increments an atomic per-parent counter; the first arrival exits (its
// sibling is not ready yet), the second computes the parent's bbox as the
// union of its two children and ascends to its own parent, repeating until
// a parent's counter shows only one arrival (sibling not ready, so this
// thread stops) or the root has been processed.
func bottomUpFill(tree *Tree, workers int) {
	counters := make([]int32, len(tree.Internals))

	climb := func(parent int32) {
		for parent != noParent {
			count := atomic.AddInt32(&counters[parent], 1)
			if count == 1 {
				// sibling subtree not finished yet; the other thread will
				// continue the climb from here.
				return
			}
			node := &tree.Internals[parent]
			left := tree.Get(node.Left)
			right := tree.Get(node.Right)
			node.Box = left.Box.Union(right.Box)
			parent = node.Parent
		}
	}

	parallelFor(len(tree.Leaves), workers, func(i int) {
		climb(tree.Leaves[i].Parent)
	})
}
