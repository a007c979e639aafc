// Package mesh holds the input primitives the core operates on: triangles
// (surface meshes) and tetrahedra with face-adjacency topology (volumetric
// meshes). These are read-only for the lifetime of a batch invocation.
package mesh

import "github.com/deadsy/bvhx/vec3"

// Triangle is a single triangle, three vertices in R3.
type Triangle [3]vec3.Vec

// Box returns the triangle's axis-aligned bounding box.
func (t Triangle) Box() vec3.Box {
	b := vec3.BoxFromPoint(t[0])
	b = b.ExtendPoint(t[1])
	b = b.ExtendPoint(t[2])
	return b
}

// Centroid returns the average of the triangle's three vertices.
func (t Triangle) Centroid() vec3.Vec {
	return t[0].Add(t[1]).Add(t[2]).DivScalar(3)
}

// Degenerate reports whether the triangle has (near-)zero area, within eps.
func (t Triangle) Degenerate(eps float64) bool {
	e1 := t[1].Sub(t[0])
	e2 := t[2].Sub(t[0])
	area2 := e1.Cross(e2).Length2()
	return area2 <= eps*eps
}

// TriangleBatch is one batch element's triangle mesh: triangles[F].
type TriangleBatch []Triangle

// Box returns the union of every triangle's bounding box in the batch
// element. Returns the empty box if the batch element has no triangles.
func (b TriangleBatch) Box() vec3.Box {
	box := vec3.EmptyBox()
	for _, t := range b {
		box = box.Union(t.Box())
	}
	return box
}
