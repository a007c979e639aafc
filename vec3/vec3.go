// Package vec3 provides the 3D vector and axis-aligned bounding box types
// shared by every other package in this module.
package vec3

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec is a point or direction in R3.
type Vec struct {
	X, Y, Z float64
}

// Add returns a + b.
func (a Vec) Add(b Vec) Vec {
	return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// MulScalar returns a * s.
func (a Vec) MulScalar(s float64) Vec {
	return Vec{a.X * s, a.Y * s, a.Z * s}
}

// DivScalar returns a / s.
func (a Vec) DivScalar(s float64) Vec {
	return Vec{a.X / s, a.Y / s, a.Z / s}
}

// AddScalar returns a + (s,s,s).
func (a Vec) AddScalar(s float64) Vec {
	return Vec{a.X + s, a.Y + s, a.Z + s}
}

// Dot returns the dot product a.b.
func (a Vec) Dot(b Vec) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a x b.
func (a Vec) Cross(b Vec) Vec {
	return Vec{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean norm of a.
func (a Vec) Length() float64 {
	return math.Sqrt(a.Dot(a))
}

// Length2 returns the squared Euclidean norm of a.
func (a Vec) Length2() float64 {
	return a.Dot(a)
}

// Min returns the component-wise minimum of a and b.
func (a Vec) Min(b Vec) Vec {
	return Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max returns the component-wise maximum of a and b.
func (a Vec) Max(b Vec) Vec {
	return Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// MaxComponent returns the largest of X, Y, Z.
func (a Vec) MaxComponent() float64 {
	return math.Max(a.X, math.Max(a.Y, a.Z))
}

// Clamp clamps each component of a to [lo,hi].
func (a Vec) Clamp(lo, hi float64) Vec {
	return Vec{
		math.Min(math.Max(a.X, lo), hi),
		math.Min(math.Max(a.Y, lo), hi),
		math.Min(math.Max(a.Z, lo), hi),
	}
}

// Component returns the i'th component (0=X, 1=Y, 2=Z).
func (a Vec) Component(i int) float64 {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

// Volume6 returns six times the signed volume of the tetrahedron (a,b,c,d),
// i.e. (b-a).Cross(c-a).Dot(d-a). Computed via gonum's mat.Det rather than
// hand-expanded scalar arithmetic, since the triple product is exactly the
// 3x3 determinant of the edge vectors.
func Volume6(a, b, c, d Vec) float64 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	m := mat.NewDense(3, 3, []float64{
		ab.X, ab.Y, ab.Z,
		ac.X, ac.Y, ac.Z,
		ad.X, ad.Y, ad.Z,
	})
	return mat.Det(m)
}
