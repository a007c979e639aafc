package lbvh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deadsy/bvhx/mesh"
	"github.com/deadsy/bvhx/vec3"
)

func gridTriangles(n int) []mesh.Triangle {
	tris := make([]mesh.Triangle, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		tris[i] = mesh.Triangle{
			{x, 0, 0},
			{x + 1, 0, 0},
			{x, 1, 0},
		}
	}
	return tris
}

func TestBuildEmpty(t *testing.T) {
	tree := Build(nil, 1)
	assert.Equal(t, noParent, tree.Root(), "Root() on an empty tree")
}

func TestBuildSingleton(t *testing.T) {
	tris := gridTriangles(1)
	tree := Build(tris, 1)
	assert.Empty(t, tree.Internals, "a single-triangle tree has no internal nodes")
	root := tree.Get(tree.Root())
	assert.True(t, root.IsLeaf)
	assert.EqualValues(t, 0, root.Tri)
}

func TestBuildExactlyNLeavesAndNMinus1Internals(t *testing.T) {
	for _, n := range []int{2, 3, 7, 64} {
		tris := gridTriangles(n)
		tree := Build(tris, 4)
		assert.Lenf(t, tree.Leaves, n, "n=%d", n)
		assert.Lenf(t, tree.Internals, n-1, "n=%d", n)
	}
}

func TestBuildBboxInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tris := make([]mesh.Triangle, 200)
	for i := range tris {
		base := vec3.Vec{X: rng.Float64() * 100, Y: rng.Float64() * 100, Z: rng.Float64() * 100}
		tris[i] = mesh.Triangle{base, base.Add(vec3.Vec{X: 1}), base.Add(vec3.Vec{Y: 1})}
	}
	tree := Build(tris, 8)

	var check func(ref int32) vec3.Box
	check = func(ref int32) vec3.Box {
		n := tree.Get(ref)
		if n.IsLeaf {
			return n.Box
		}
		left := check(n.Left)
		right := check(n.Right)
		want := left.Union(right)
		if want != n.Box {
			t.Errorf("node at ref %d: Box = %v, want union of children %v", ref, n.Box, want)
		}
		return n.Box
	}
	check(tree.Root())
}

func TestBuildEveryTriangleReachableAsExactlyOneLeaf(t *testing.T) {
	tris := gridTriangles(50)
	tree := Build(tris, 4)
	seen := make([]bool, len(tris))
	for i := range tree.Leaves {
		tri := tree.Leaves[i].Tri
		if seen[tri] {
			t.Errorf("triangle %d appears in more than one leaf", tri)
		}
		seen[tri] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("triangle %d never appears in any leaf", i)
		}
	}
}

func TestBuildDeterministicAcrossRuns(t *testing.T) {
	tris := gridTriangles(40)
	a := Build(tris, 4)
	b := Build(tris, 4)
	if len(a.Internals) != len(b.Internals) {
		t.Fatal("internal node counts differ between two builds of the same input")
	}
	for i := range a.Internals {
		if a.Internals[i].Left != b.Internals[i].Left || a.Internals[i].Right != b.Internals[i].Right {
			t.Errorf("internal %d: topology differs between builds (%+v vs %+v)", i, a.Internals[i], b.Internals[i])
		}
	}
}
