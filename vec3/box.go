package vec3

import "math"

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec
}

// EmptyBox returns a box with Min at +inf and Max at -inf, ready to be
// grown by repeated Union calls.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: Vec{inf, inf, inf},
		Max: Vec{-inf, -inf, -inf},
	}
}

// BoxFromPoint returns the degenerate box containing only p.
func BoxFromPoint(p Vec) Box {
	return Box{Min: p, Max: p}
}

// Union returns the smallest box containing both a and b.
func (a Box) Union(b Box) Box {
	return Box{
		Min: a.Min.Min(b.Min),
		Max: a.Max.Max(b.Max),
	}
}

// ExtendPoint returns the smallest box containing a and p.
func (a Box) ExtendPoint(p Vec) Box {
	return Box{Min: a.Min.Min(p), Max: a.Max.Max(p)}
}

// Center returns the midpoint of the box.
func (a Box) Center() Vec {
	return a.Min.Add(a.Max).MulScalar(0.5)
}

// Size returns Max - Min.
func (a Box) Size() Vec {
	return a.Max.Sub(a.Min)
}

// SurfaceArea returns the surface area of the box.
func (a Box) SurfaceArea() float64 {
	s := a.Size()
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// Dist2 returns the squared distance from p to the closest point on the box
// (zero if p is inside).
func (a Box) Dist2(p Vec) float64 {
	d := 0.0
	for i := 0; i < 3; i++ {
		c := p.Component(i)
		lo := a.Min.Component(i)
		hi := a.Max.Component(i)
		if c < lo {
			d += (lo - c) * (lo - c)
		} else if c > hi {
			d += (c - hi) * (c - hi)
		}
	}
	return d
}

// Contains reports whether p lies within the box.
func (a Box) Contains(p Vec) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// IntersectRay performs the slab test against the box, returning the entry
// and exit distances along the ray and whether the ray intersects the box
// at all (tExit >= tEnter and tExit >= 0).
func (a Box) IntersectRay(origin, dir Vec) (tEnter, tExit float64, ok bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	for i := 0; i < 3; i++ {
		o := origin.Component(i)
		d := dir.Component(i)
		lo := a.Min.Component(i)
		hi := a.Max.Component(i)
		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		invD := 1.0 / d
		t0 := (lo - o) * invD
		t1 := (hi - o) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}
	if tMax < 0 {
		return 0, 0, false
	}
	return tMin, tMax, true
}
