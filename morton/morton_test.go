package morton

import (
	"testing"

	"github.com/deadsy/bvhx/vec3"
)

func TestEncodeOriginIsZero(t *testing.T) {
	if got := Encode(vec3.Vec{0, 0, 0}); got != 0 {
		t.Errorf("Encode(origin) = %d, want 0", got)
	}
}

func TestEncodeMonotoneAlongX(t *testing.T) {
	box := vec3.Box{Min: vec3.Vec{0, 0, 0}, Max: vec3.Vec{1, 1, 1}}
	prev := Encode(Normalize(vec3.Vec{0, 0, 0}, box))
	for i := 1; i <= 10; i++ {
		p := vec3.Vec{float64(i) / 10, 0, 0}
		got := Encode(Normalize(p, box))
		if got < prev {
			t.Errorf("morton code decreased along monotone x sweep at step %d", i)
		}
		prev = got
	}
}

func TestQuantizeEndpoints(t *testing.T) {
	lo := Quantize(vec3.Vec{0, 0, 0})
	if lo.X != 0 || lo.Y != 0 || lo.Z != 0 {
		t.Errorf("Quantize(0,0,0) = %v, want all zero", lo)
	}
	hi := Quantize(vec3.Vec{1, 1, 1})
	if hi.X != 1023 || hi.Y != 1023 || hi.Z != 1023 {
		t.Errorf("Quantize(1,1,1) = %v, want all 1023", hi)
	}
}

func TestNormalizeClampsOutOfRange(t *testing.T) {
	box := vec3.Box{Min: vec3.Vec{0, 0, 0}, Max: vec3.Vec{10, 10, 10}}
	got := Normalize(vec3.Vec{-5, 20, 5}, box)
	want := vec3.Vec{0, 1, 0.5}
	if got != want {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}
