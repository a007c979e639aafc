// Package oracle is an independent ground-truth nearest-triangle check
// used only by tests: it indexes triangles with
// github.com/dhconnelly/rtreego's R-tree (node-splitting heuristic, not
// lbvh's Karras radix construction) so that a traverse/query property
// test comparing against it is checking against a structurally
// different implementation, not re-deriving lbvh's own answer.
package oracle

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/deadsy/bvhx/mesh"
	"github.com/deadsy/bvhx/primitive"
	"github.com/deadsy/bvhx/vec3"
)

// minExtent keeps rtreego.NewRect from rejecting a degenerate
// (zero-thickness) triangle bounding box, which NewRect treats as an
// invalid rectangle.
const minExtent = 1e-9

type triSpatial struct {
	idx  int32
	rect *rtreego.Rect
}

func (t *triSpatial) Bounds() *rtreego.Rect { return t.rect }

// Oracle answers nearest-triangle queries independently of lbvh/traverse.
type Oracle struct {
	tree *rtreego.Rtree
	tris []mesh.Triangle
}

// Build indexes tris into an R-tree.
func Build(tris []mesh.Triangle) *Oracle {
	tree := rtreego.NewTree(3, 4, 16)
	for i, tri := range tris {
		box := tri.Box()
		size := box.Size()
		lengths := []float64{
			math.Max(size.X, minExtent),
			math.Max(size.Y, minExtent),
			math.Max(size.Z, minExtent),
		}
		rect, err := rtreego.NewRect(rtreego.Point{box.Min.X, box.Min.Y, box.Min.Z}, lengths)
		if err != nil {
			continue
		}
		tree.Insert(&triSpatial{idx: int32(i), rect: rect})
	}
	return &Oracle{tree: tree, tris: tris}
}

// NearestPoint returns the index of, and closest point on, the triangle
// nearest p. rtreego.NearestNeighbors(k, p) supplies the candidate set in
// rtreego's own box-distance order; k spans the whole index so the exact
// per-triangle refinement below is exhaustive, matching the tie-break
// rule (lowest index wins) traverse.NearestPoint uses.
func (o *Oracle) NearestPoint(p vec3.Vec) (int32, primitive.ClosestPointOnTriangleResult) {
	best := primitive.ClosestPointOnTriangleResult{Dist2: math.Inf(1)}
	bestIdx := int32(-1)

	candidates := o.tree.NearestNeighbors(len(o.tris), rtreego.Point{p.X, p.Y, p.Z})
	for _, c := range candidates {
		ts, ok := c.(*triSpatial)
		if !ok {
			continue
		}
		tri := o.tris[ts.idx]
		r := primitive.ClosestPointOnTriangle(p, tri[0], tri[1], tri[2])
		if r.Dist2 < best.Dist2 || (r.Dist2 == best.Dist2 && ts.idx < bestIdx) {
			best = r
			bestIdx = ts.idx
		}
	}
	return bestIdx, best
}
