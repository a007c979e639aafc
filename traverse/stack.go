package traverse

import (
	"github.com/deadsy/bvhx/internal/logx"
	"github.com/deadsy/bvhx/lbvh"
	"github.com/deadsy/bvhx/mesh"
	"github.com/deadsy/bvhx/primitive"
	"github.com/deadsy/bvhx/vec3"
)

// NearestPoint finds the closest point on tris to query, traversing tree
// with a fixed-capacity explicit stack. "Promising" for a point query is a
// non-strict test: point-to-box squared distance <= current best squared
// distance.
func NearestPoint(tree *lbvh.Tree, tris []mesh.Triangle, query vec3.Vec, cap Capacity) (Result, error) {
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
	promising := func(box vec3.Box) bool {
		return box.Dist2(query) <= best.Distance
	}

	stackTraverse(tree, root, int(cap), promising, visitLeaf)
	return best, nil
}

// NearestRayHit finds the nearest triangle the ray (origin, dir) hits,
// traversing tree with a fixed-capacity explicit stack. "Promising" for a
// ray query is a strict test: slab tEnter < current best hit distance.
// This is intentionally asymmetric with NearestPoint's non-strict test: it
// avoids re-descending into a box whose entry exactly equals the current
// best hit, which NearestPoint's equality tie-break (lowest face index
// wins) needs instead.
func NearestRayHit(tree *lbvh.Tree, tris []mesh.Triangle, origin, dir vec3.Vec, cap Capacity) (Result, error) {
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
	promising := func(box vec3.Box) bool {
		tEnter, _, ok := box.IntersectRay(origin, dir)
		return ok && tEnter < best.Distance
	}

	stackTraverse(tree, root, int(cap), promising, visitLeaf)
	return best, nil
}

// lbvhNoNode mirrors lbvh's internal "no node" sentinel; kept local since
// lbvh does not export its encoding (traversal only ever needs to compare
// against Root()'s possible empty-tree value, not decode refs itself).
const lbvhNoNode int32 = -1

// stackTraverse is the shared explicit-stack descent: test both children's
// boxes, intersect any promising leaf immediately, descend into the
// first promising internal child and push the second, pop when neither
// child remains to explore.
func stackTraverse(tree *lbvh.Tree, root int32, capacity int, promising func(vec3.Box) bool, visitLeaf func(*lbvh.Node)) {
	rootNode := tree.Get(root)
	if rootNode.IsLeaf {
		if promising(rootNode.Box) {
			visitLeaf(rootNode)
		}
		return
	}

	stack := make([]int32, 0, capacity)
	current := root

	for {
		node := tree.Get(current)
		left := tree.Get(node.Left)
		right := tree.Get(node.Right)

		leftGo := promising(left.Box)
		rightGo := promising(right.Box)

		if leftGo && left.IsLeaf {
			visitLeaf(left)
			leftGo = false
		}
		if rightGo && right.IsLeaf {
			visitLeaf(right)
			rightGo = false
		}

		switch {
		case leftGo && rightGo:
			if len(stack) < capacity {
				stack = append(stack, node.Right)
			} else {
				logx.Debugf("traverse: stack full at capacity=%d, dropping node %d", capacity, node.Right)
			}
			current = node.Left
		case leftGo:
			current = node.Left
		case rightGo:
			current = node.Right
		default:
			if len(stack) == 0 {
				return
			}
			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
	}
}
