// Package vec3i provides an integer 3-vector, used for grid/step counts.
package vec3i

// Vec is an integer-valued 3-vector.
type Vec struct {
	X, Y, Z int
}

// Add returns a + b.
func (a Vec) Add(b Vec) Vec {
	return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// AddScalar returns a + (s,s,s).
func (a Vec) AddScalar(s int) Vec {
	return Vec{a.X + s, a.Y + s, a.Z + s}
}
