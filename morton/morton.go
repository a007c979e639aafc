// Package morton implements the 30-bit Morton (Z-order) codec used to turn
// a triangle's centroid into a sortable key for LBVH construction, and to
// optionally reorder queries for warp/cache coherence.
package morton

import (
	"github.com/deadsy/bvhx/vec3"
	"github.com/deadsy/bvhx/vec3i"
)

// QueryCube is the fixed normalization box used when reordering query
// points/rays: the core assumes queries are pre-normalized into [-1,1]^3.
var QueryCube = vec3.Box{Min: vec3.Vec{X: -1, Y: -1, Z: -1}, Max: vec3.Vec{X: 1, Y: 1, Z: 1}}

// Normalize maps p from box's extent into [0,1]^3, clamping to that range.
func Normalize(p vec3.Vec, box vec3.Box) vec3.Vec {
	size := box.Size()
	q := p.Sub(box.Min)
	if size.X != 0 {
		q.X /= size.X
	}
	if size.Y != 0 {
		q.Y /= size.Y
	}
	if size.Z != 0 {
		q.Z /= size.Z
	}
	return q.Clamp(0, 1)
}

// spread3 interleaves the low 10 bits of x with two zero bits between each
// source bit, the standard constant-time bit trick for building 3D Morton
// codes.
func spread3(x uint32) uint32 {
	x &= 0x3ff
	x = (x | (x << 16)) & 0x030000ff
	x = (x | (x << 8)) & 0x0300f00f
	x = (x | (x << 4)) & 0x030c30c3
	x = (x | (x << 2)) & 0x09249249
	return x
}

// quantize10 scales a [0,1]-clamped coordinate to a 10-bit integer.
func quantize10(v float64) uint32 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	q := uint32(v * 1023.0)
	if q > 1023 {
		q = 1023
	}
	return q
}

// Quantize converts a [0,1]-clamped coordinate into its 10-bit integer
// grid cell.
func Quantize(p vec3.Vec) vec3i.Vec {
	return vec3i.Vec{
		X: int(quantize10(p.X)),
		Y: int(quantize10(p.Y)),
		Z: int(quantize10(p.Z)),
	}
}

// Encode returns the 30-bit Morton code of p, whose components must
// already be normalized into [0,1]^3 (see Normalize). Packed as
// (x<<2)|(y<<1)|z.
func Encode(p vec3.Vec) uint32 {
	q := Quantize(p)
	x := spread3(uint32(q.X))
	y := spread3(uint32(q.Y))
	z := spread3(uint32(q.Z))
	return (x << 2) | (y << 1) | z
}
