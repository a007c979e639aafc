package primitive

import (
	"math"

	"github.com/deadsy/bvhx/mesh"
	"github.com/deadsy/bvhx/vec3"
)

// TetraBary is a tetrahedron's barycentric coordinates, A+B+C+D = 1. A
// point is inside the tetrahedron iff all four components are >= 0.
type TetraBary struct {
	A, B, C, D float64
}

// Sum returns A+B+C+D (should be 1, modulo floating-point error).
func (t TetraBary) Sum() float64 {
	return t.A + t.B + t.C + t.D
}

// Inside reports whether every component is >= -eps.
func (t TetraBary) Inside(eps float64) bool {
	return t.A >= -eps && t.B >= -eps && t.C >= -eps && t.D >= -eps
}

// TetraBarycentric returns p's barycentric coordinates with respect to
// tetrahedron t, as a ratio of scalar triple products (vec3.Volume6): each
// component is the signed volume of the sub-tetrahedron formed by
// substituting p for that vertex, divided by t's total volume.
func TetraBarycentric(p vec3.Vec, t mesh.Tetra) TetraBary {
	v0, v1, v2, v3v := t[0], t[1], t[2], t[3]
	vTotal := vec3.Volume6(v0, v1, v2, v3v)
	if vTotal == 0 {
		return TetraBary{}
	}
	// Sub-volume opposite each vertex, point substituted in for that vertex.
	vA := vec3.Volume6(p, v1, v2, v3v)
	vB := vec3.Volume6(v0, p, v2, v3v)
	vC := vec3.Volume6(v0, v1, p, v3v)
	vD := vec3.Volume6(v0, v1, v2, p)
	return TetraBary{
		A: vA / vTotal,
		B: vB / vTotal,
		C: vC / vTotal,
		D: vD / vTotal,
	}
}

// PointInTetra reports whether p lies inside tetrahedron t, within eps, via
// TetraBarycentric.
func PointInTetra(p vec3.Vec, t mesh.Tetra, eps float64) bool {
	return TetraBarycentric(p, t).Inside(eps)
}

// isZeroVolume is a scale-invariant degeneracy guard so callers can reject
// degenerate tetrahedra before trusting a barycentric division: it
// compares the tetrahedron's volume against the product of its opposite
// edge-length sums, which cancels out absolute scale
// (https://math.stackexchange.com/a/4709610/197913).
func isZeroVolume(a, b, c, d vec3.Vec) bool {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)

	nab := ab.Length()
	ncd := d.Sub(c).Length()
	nbd := d.Sub(b).Length()
	nbc := c.Sub(b).Length()
	nac := ac.Length()
	nad := ad.Length()

	if nab == 0 || ncd == 0 || nbd == 0 || nbc == 0 || nac == 0 || nad == 0 {
		return true
	}

	volume := 1.0 / 6.0 * math.Abs(ab.Cross(ac).Dot(ad))
	denom := (nab + ncd) * (nac + nbd) * (nad + nbc)
	const tolerance = 480.0
	rho := tolerance * volume / denom
	return rho < 1
}

// Degenerate reports whether tetrahedron t has (near-)zero volume.
func Degenerate(t mesh.Tetra) bool {
	return isZeroVolume(t[0], t[1], t[2], t[3])
}
