package query

import (
	"context"
	"math/rand"
	"testing"

	"github.com/deadsy/bvhx/mesh"
	"github.com/deadsy/bvhx/traverse"
	"github.com/deadsy/bvhx/vec3"
)

func randomTriangles(rng *rand.Rand, n int) []mesh.Triangle {
	tris := make([]mesh.Triangle, n)
	for i := range tris {
		base := vec3.Vec{X: rng.Float64() * 50, Y: rng.Float64() * 50, Z: rng.Float64() * 50}
		tris[i] = mesh.Triangle{
			base,
			base.Add(vec3.Vec{X: 1 + rng.Float64()}),
			base.Add(vec3.Vec{Y: 1 + rng.Float64()}),
		}
	}
	return tris
}

func TestNearestReorderingDoesNotChangeResults(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tris := randomTriangles(rng, 100)
	points := make([]vec3.Vec, 60)
	for i := range points {
		points[i] = vec3.Vec{X: rng.Float64() * 50, Y: rng.Float64() * 50, Z: rng.Float64() * 50}
	}

	batch := [][]mesh.Triangle{tris}
	pts := [][]vec3.Vec{points}

	direct, err := Nearest(context.Background(), batch, pts, Options{Capacity: traverse.Cap128, Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	reordered, err := Nearest(context.Background(), batch, pts, Options{Capacity: traverse.Cap128, Workers: 4, Reorder: true})
	if err != nil {
		t.Fatal(err)
	}

	for i := range points {
		a, b := direct[0][i], reordered[0][i]
		if a.Face != b.Face || a.Distance != b.Distance {
			t.Errorf("point %d: direct=%+v reordered=%+v differ", i, a, b)
		}
	}
}

func TestNearestBestFirstAgreesWithStackAcrossBatch(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tris := randomTriangles(rng, 64)
	points := make([]vec3.Vec, 30)
	for i := range points {
		points[i] = vec3.Vec{X: rng.Float64() * 50, Y: rng.Float64() * 50, Z: rng.Float64() * 50}
	}
	batch := [][]mesh.Triangle{tris}
	pts := [][]vec3.Vec{points}

	stack, err := Nearest(context.Background(), batch, pts, Options{Capacity: traverse.Cap128, Traversal: Stack})
	if err != nil {
		t.Fatal(err)
	}
	bestFirst, err := Nearest(context.Background(), batch, pts, Options{Capacity: traverse.Cap128, Traversal: BestFirst})
	if err != nil {
		t.Fatal(err)
	}
	for i := range points {
		if stack[0][i].Face != bestFirst[0][i].Face {
			t.Errorf("point %d: stack face=%d best-first face=%d", i, stack[0][i].Face, bestFirst[0][i].Face)
		}
	}
}

func TestNearestInvalidCapacity(t *testing.T) {
	_, err := Nearest(context.Background(), nil, nil, Options{Capacity: traverse.Capacity(3)})
	if err == nil {
		t.Error("expected ErrInvalidCapacity")
	}
}

func TestRayNearestBasic(t *testing.T) {
	tris := []mesh.Triangle{{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}}}
	rays := [][]Ray{{{Origin: vec3.Vec{Z: -5}, Dir: vec3.Vec{Z: 1}}}}
	out, err := RayNearest(context.Background(), [][]mesh.Triangle{tris}, rays, Options{Capacity: traverse.Cap32})
	if err != nil {
		t.Fatal(err)
	}
	if out[0][0].Face != 0 {
		t.Errorf("Face = %d, want 0", out[0][0].Face)
	}
	if out[0][0].Distance != 5 {
		t.Errorf("Distance (t) = %v, want 5", out[0][0].Distance)
	}
}
