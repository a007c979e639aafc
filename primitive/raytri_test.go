package primitive

import (
	"math"
	"testing"

	"github.com/deadsy/bvhx/vec3"
)

func TestRayTriangleHit(t *testing.T) {
	a, b, c := vec3.Vec{0, 0, 0}, vec3.Vec{1, 0, 0}, vec3.Vec{0, 1, 0}
	r := RayTriangle(vec3.Vec{0.2, 0.2, 1}, vec3.Vec{0, 0, -1}, a, b, c)
	if !r.Ok {
		t.Fatal("expected hit")
	}
	if math.Abs(r.T-1) > 1e-9 {
		t.Errorf("T = %v, want 1", r.T)
	}
	want := vec3.Vec{0.2, 0.2, 0}
	if r.Hit.Sub(want).Length() > 1e-9 {
		t.Errorf("Hit = %v, want %v", r.Hit, want)
	}
}

func TestRayTriangleMissOutsideEdge(t *testing.T) {
	a, b, c := vec3.Vec{0, 0, 0}, vec3.Vec{1, 0, 0}, vec3.Vec{0, 1, 0}
	r := RayTriangle(vec3.Vec{2, 2, 1}, vec3.Vec{0, 0, -1}, a, b, c)
	if r.Ok {
		t.Error("expected miss")
	}
}

func TestRayTriangleMissBehindOrigin(t *testing.T) {
	a, b, c := vec3.Vec{0, 0, 0}, vec3.Vec{1, 0, 0}, vec3.Vec{0, 1, 0}
	r := RayTriangle(vec3.Vec{0.2, 0.2, -1}, vec3.Vec{0, 0, -1}, a, b, c)
	if r.Ok {
		t.Error("expected miss: triangle is behind the ray origin")
	}
}

func TestRayTriangleParallel(t *testing.T) {
	a, b, c := vec3.Vec{0, 0, 0}, vec3.Vec{1, 0, 0}, vec3.Vec{0, 1, 0}
	r := RayTriangle(vec3.Vec{0, 0, 1}, vec3.Vec{1, 0, 0}, a, b, c)
	if r.Ok {
		t.Error("expected miss: ray parallel to triangle plane")
	}
}
