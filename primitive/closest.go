// Package primitive implements the triangle/AABB/tetra geometry kernels the
// rest of this module is built on: point-triangle closest point, ray-
// triangle intersection, ray-box slab test and tetra point-containment /
// barycentric coordinates. None of these hold any state; each call is a
// pure function of its inputs.
package primitive

import "github.com/deadsy/bvhx/vec3"

// Bary is a barycentric coordinate triple for a triangle, components
// summing to 1. Tetrahedra use TetraBary instead.
type Bary struct {
	U, V, W float64
}

// Sum returns U+V+W (should be 1, modulo floating-point error).
func (b Bary) Sum() float64 {
	return b.U + b.V + b.W
}

// ClosestPointOnTriangleResult is the result of a point-triangle closest
// point query.
type ClosestPointOnTriangleResult struct {
	Point vec3.Vec
	Bary  Bary
	Dist2 float64
}

// ClosestPointOnTriangle returns the closest point on triangle (a,b,c) to p,
// via Ericson's Voronoi-region classification (Real-Time Collision
// Detection, ch. 5). The six regions are tested in a fixed order for
// deterministic results: vertex A, vertex B, edge AB, vertex C, edge AC,
// edge BC, interior face.
func ClosestPointOnTriangle(p, a, b, c vec3.Vec) ClosestPointOnTriangleResult {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		// region vertex A
		return ClosestPointOnTriangleResult{Point: a, Bary: Bary{1, 0, 0}, Dist2: p.Sub(a).Length2()}
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		// region vertex B
		return ClosestPointOnTriangleResult{Point: b, Bary: Bary{0, 1, 0}, Dist2: p.Sub(b).Length2()}
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		// region edge AB
		v := d1 / (d1 - d3)
		pt := a.Add(ab.MulScalar(v))
		return ClosestPointOnTriangleResult{Point: pt, Bary: Bary{1 - v, v, 0}, Dist2: p.Sub(pt).Length2()}
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		// region vertex C
		return ClosestPointOnTriangleResult{Point: c, Bary: Bary{0, 0, 1}, Dist2: p.Sub(c).Length2()}
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		// region edge AC
		w := d2 / (d2 - d6)
		pt := a.Add(ac.MulScalar(w))
		return ClosestPointOnTriangleResult{Point: pt, Bary: Bary{1 - w, 0, w}, Dist2: p.Sub(pt).Length2()}
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		// region edge BC
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		pt := b.Add(c.Sub(b).MulScalar(w))
		return ClosestPointOnTriangleResult{Point: pt, Bary: Bary{0, 1 - w, w}, Dist2: p.Sub(pt).Length2()}
	}

	// region interior face
	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	pt := a.Add(ab.MulScalar(v)).Add(ac.MulScalar(w))
	return ClosestPointOnTriangleResult{Point: pt, Bary: Bary{1 - v - w, v, w}, Dist2: p.Sub(pt).Length2()}
}
