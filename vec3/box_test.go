package vec3

import (
	"math"
	"testing"
)

func TestBoxUnion(t *testing.T) {
	a := Box{Min: Vec{0, 0, 0}, Max: Vec{1, 1, 1}}
	b := Box{Min: Vec{-1, 2, 0.5}, Max: Vec{0.5, 3, 2}}
	u := a.Union(b)
	want := Box{Min: Vec{-1, 0, 0}, Max: Vec{1, 3, 2}}
	if u != want {
		t.Errorf("Union() = %v, want %v", u, want)
	}
}

func TestBoxDist2Inside(t *testing.T) {
	b := Box{Min: Vec{0, 0, 0}, Max: Vec{2, 2, 2}}
	if d := b.Dist2(Vec{1, 1, 1}); d != 0 {
		t.Errorf("Dist2(inside) = %v, want 0", d)
	}
}

func TestBoxDist2Outside(t *testing.T) {
	b := Box{Min: Vec{0, 0, 0}, Max: Vec{1, 1, 1}}
	got := b.Dist2(Vec{2, 0.5, 0.5})
	if got != 1 {
		t.Errorf("Dist2() = %v, want 1", got)
	}
}

func TestBoxIntersectRayHit(t *testing.T) {
	b := Box{Min: Vec{-1, -1, -1}, Max: Vec{1, 1, 1}}
	tEnter, tExit, ok := b.IntersectRay(Vec{-5, 0, 0}, Vec{1, 0, 0})
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(tEnter-4) > 1e-9 || math.Abs(tExit-6) > 1e-9 {
		t.Errorf("tEnter=%v tExit=%v, want 4,6", tEnter, tExit)
	}
}

func TestBoxIntersectRayMiss(t *testing.T) {
	b := Box{Min: Vec{-1, -1, -1}, Max: Vec{1, 1, 1}}
	_, _, ok := b.IntersectRay(Vec{-5, 5, 0}, Vec{1, 0, 0})
	if ok {
		t.Error("expected miss")
	}
}

func TestBoxIntersectRayBehindOrigin(t *testing.T) {
	b := Box{Min: Vec{-1, -1, -1}, Max: Vec{1, 1, 1}}
	_, _, ok := b.IntersectRay(Vec{5, 0, 0}, Vec{1, 0, 0})
	if ok {
		t.Error("expected miss: box is entirely behind the ray origin")
	}
}

func TestEmptyBoxUnionIdentity(t *testing.T) {
	a := BoxFromPoint(Vec{3, 4, 5})
	u := EmptyBox().Union(a)
	if u != a {
		t.Errorf("EmptyBox().Union(a) = %v, want %v", u, a)
	}
}
