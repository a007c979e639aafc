package vec3

import (
	"math"
	"testing"
)

func TestVolume6UnitTetra(t *testing.T) {
	a := Vec{0, 0, 0}
	b := Vec{1, 0, 0}
	c := Vec{0, 1, 0}
	d := Vec{0, 0, 1}
	got := Volume6(a, b, c, d)
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("Volume6() = %v, want 1", got)
	}
}

func TestVolume6Degenerate(t *testing.T) {
	a := Vec{0, 0, 0}
	b := Vec{1, 0, 0}
	c := Vec{2, 0, 0}
	d := Vec{3, 0, 0}
	if got := Volume6(a, b, c, d); math.Abs(got) > 1e-9 {
		t.Errorf("Volume6(coplanar/collinear) = %v, want ~0", got)
	}
}

func TestCrossOrthogonal(t *testing.T) {
	x := Vec{1, 0, 0}
	y := Vec{0, 1, 0}
	z := x.Cross(y)
	if z != (Vec{0, 0, 1}) {
		t.Errorf("Cross(x,y) = %v, want z", z)
	}
}
