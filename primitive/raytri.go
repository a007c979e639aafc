package primitive

import (
	"math"

	"github.com/deadsy/bvhx/vec3"
)

// rayEpsilon guards the Möller–Trumbore determinant test against
// near-parallel rays.
const rayEpsilon = 1e-12

// RayTriangleResult is the result of a ray-triangle intersection test.
type RayTriangleResult struct {
	T    float64
	Bary Bary
	Hit  vec3.Vec
	Ok   bool
}

// RayTriangle intersects the ray (origin, dir) against triangle (a,b,c)
// using the Möller–Trumbore parametric test. Rejects u outside [0,1], v
// outside [0,1], u+v>1 or t<0 by returning Ok=false. A parallel
// (degenerate) ray also yields Ok=false.
func RayTriangle(origin, dir, a, b, c vec3.Vec) RayTriangleResult {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	pvec := dir.Cross(e2)
	det := e1.Dot(pvec)
	if math.Abs(det) < rayEpsilon {
		return RayTriangleResult{T: math.Inf(1)}
	}
	invDet := 1.0 / det
	tvec := origin.Sub(a)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return RayTriangleResult{T: math.Inf(1)}
	}
	qvec := tvec.Cross(e1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return RayTriangleResult{T: math.Inf(1)}
	}
	t := e2.Dot(qvec) * invDet
	if t < 0 {
		return RayTriangleResult{T: math.Inf(1)}
	}
	return RayTriangleResult{
		T:    t,
		Bary: Bary{1 - u - v, u, v},
		Hit:  origin.Add(dir.MulScalar(t)),
		Ok:   true,
	}
}

// RayBox performs the slab test against box, returning the entry and exit
// distances and whether the ray intersects it at all.
func RayBox(box vec3.Box, origin, dir vec3.Vec) (tEnter, tExit float64, ok bool) {
	return box.IntersectRay(origin, dir)
}
