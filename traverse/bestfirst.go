package traverse

import (
	"container/heap"
	"math"

	"github.com/deadsy/bvhx/internal/logx"
	"github.com/deadsy/bvhx/lbvh"
	"github.com/deadsy/bvhx/mesh"
	"github.com/deadsy/bvhx/primitive"
	"github.com/deadsy/bvhx/vec3"
)

// NearestPointBestFirst is the best-first (priority-queue) counterpart of
// NearestPoint. It must agree with NearestPoint exactly — same
// (distance, face, point) tuple, up to the same lowest-face-index
// tie-break — since both traverse the identical tree under the identical
// promising test.
func NearestPointBestFirst(tree *lbvh.Tree, tris []mesh.Triangle, query vec3.Vec, cap Capacity) (Result, error) {
	if err := cap.Validate(); err != nil {
		return Result{}, err
	}
	root := tree.Root()
	if root == lbvhNoNode {
		return emptyResult(), nil
	}

	best := emptyResult()
	visitLeaf := func(n *lbvh.Node) {
		tri := tris[n.Tri]
		r := primitive.ClosestPointOnTriangle(query, tri[0], tri[1], tri[2])
		if r.Dist2 < best.Distance || (r.Dist2 == best.Distance && n.Tri < best.Face) {
			best = Result{Point: r.Point, Face: n.Tri, Bary: r.Bary, Distance: r.Dist2}
		}
	}
	key := func(box vec3.Box) float64 { return box.Dist2(query) }
	promising := func(box vec3.Box) bool { return box.Dist2(query) <= best.Distance }

	bestFirstTraverse(tree, root, int(cap), key, promising, visitLeaf)
	return best, nil
}

// NearestRayHitBestFirst is the best-first counterpart of NearestRayHit;
// see NearestPointBestFirst for the agreement requirement. The strict-<
// promising test is the same one NearestRayHit uses.
func NearestRayHitBestFirst(tree *lbvh.Tree, tris []mesh.Triangle, origin, dir vec3.Vec, cap Capacity) (Result, error) {
	if err := cap.Validate(); err != nil {
		return Result{}, err
	}
	root := tree.Root()
	if root == lbvhNoNode {
		return emptyResult(), nil
	}

	best := emptyResult()
	visitLeaf := func(n *lbvh.Node) {
		tri := tris[n.Tri]
		r := primitive.RayTriangle(origin, dir, tri[0], tri[1], tri[2])
		if !r.Ok {
			return
		}
		if r.T < best.Distance || (r.T == best.Distance && n.Tri < best.Face) {
			best = Result{Point: r.Hit, Face: n.Tri, Bary: r.Bary, Distance: r.T}
		}
	}
	key := func(box vec3.Box) float64 {
		tEnter, _, ok := box.IntersectRay(origin, dir)
		if !ok {
			return math.Inf(1)
		}
		return tEnter
	}
	promising := func(box vec3.Box) bool {
		tEnter, _, ok := box.IntersectRay(origin, dir)
		return ok && tEnter < best.Distance
	}

	bestFirstTraverse(tree, root, int(cap), key, promising, visitLeaf)
	return best, nil
}

// heapEntry is one pending node reference in the best-first frontier,
// ordered by key (ascending: smallest box-distance/tEnter first).
type heapEntry struct {
	ref int32
	key float64
}

type entryHeap []heapEntry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].key < h[j].key }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// bestFirstTraverse is the shared best-first descent: pop the
// lowest-key frontier entry, re-check it is still promising (best may
// have improved since it was queued — a stale entry is simply
// discarded), expand internal nodes by pushing both children, and
// intersect leaves directly. capacity bounds the frontier size; a push
// that would exceed it is dropped, matching stackTraverse's overflow
// policy: insufficient capacity is undefined behavior, not a crash.
func bestFirstTraverse(tree *lbvh.Tree, root int32, capacity int, key func(vec3.Box) float64, promising func(vec3.Box) bool, visitLeaf func(*lbvh.Node)) {
	rootNode := tree.Get(root)
	if rootNode.IsLeaf {
		if promising(rootNode.Box) {
			visitLeaf(rootNode)
		}
		return
	}

	h := &entryHeap{}
	*h = make(entryHeap, 0, capacity)
	heap.Push(h, heapEntry{ref: root, key: key(rootNode.Box)})

	pushChild := func(ref int32) {
		if len(*h) >= capacity {
			logx.Debugf("traverse: frontier full at capacity=%d, dropping node %d", capacity, ref)
			return
		}
		n := tree.Get(ref)
		if !promising(n.Box) {
			return
		}
		heap.Push(h, heapEntry{ref: ref, key: key(n.Box)})
	}

	for h.Len() > 0 {
		top := heap.Pop(h).(heapEntry)
		node := tree.Get(top.ref)
		if !promising(node.Box) {
			continue
		}
		if node.IsLeaf {
			visitLeaf(node)
			continue
		}
		pushChild(node.Left)
		pushChild(node.Right)
	}
}
