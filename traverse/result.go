package traverse

import (
	"math"

	"github.com/deadsy/bvhx/primitive"
	"github.com/deadsy/bvhx/vec3"
)

// Result is a nearest-point or nearest-ray-hit query result: the closest
// point found, the triangle that produced it (-1 if the mesh is empty),
// its barycentric coordinates, and the distance (squared, for point
// queries; linear "t", for ray queries). +Inf distance signals no hit for
// ray queries.
type Result struct {
	Point    vec3.Vec
	Face     int32
	Bary     primitive.Bary
	Distance float64
}

// emptyResult is the sentinel result for a mesh with no triangles. Not an
// error: an empty mesh has no nearest anything.
func emptyResult() Result {
	return Result{Face: -1, Distance: math.Inf(1)}
}
