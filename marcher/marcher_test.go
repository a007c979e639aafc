package marcher

import (
	"testing"

	"github.com/deadsy/bvhx/mesh"
	"github.com/deadsy/bvhx/vec3"
)

// twoTetraChain glues a unit tetrahedron {A,B,C,D} to a second tetrahedron
// {E,B,C,D} sharing face {B,C,D} (the face opposite A in the first, and
// opposite E in the second — see mesh.Tetra's face table). A ray along
// (1,1,1) starting near A crosses that shared face at x=y=z=1/3 (the
// plane x+y+z=1, by construction) and continues into the second tetra.
func twoTetraChain() (mesh.TetraBatch, mesh.Topology) {
	a := vec3.Vec{X: 0, Y: 0, Z: 0}
	b := vec3.Vec{X: 1, Y: 0, Z: 0}
	c := vec3.Vec{X: 0, Y: 1, Z: 0}
	d := vec3.Vec{X: 0, Y: 0, Z: 1}
	e := vec3.Vec{X: 1, Y: 1, Z: 1}

	tets := mesh.TetraBatch{
		{a, b, c, d},
		{e, b, c, d},
	}
	topo := mesh.Topology{
		mesh.Neighbors{1, -1, -1, -1},
		mesh.Neighbors{0, -1, -1, -1},
	}
	return tets, topo
}

func TestMarchCrossesSharedFace(t *testing.T) {
	tets, topo := twoTetraChain()
	origin := vec3.Vec{X: 0.05, Y: 0.05, Z: 0.05}
	dir := vec3.Vec{X: 1, Y: 1, Z: 1}

	samples := March(tets, topo, 0, 0, 0.05, 10, origin, dir)

	for i := 0; i < 6; i++ {
		if samples[i].TetraIndex != 0 {
			t.Errorf("sample %d: TetraIndex = %d, want 0", i, samples[i].TetraIndex)
		}
	}
	if samples[6].TetraIndex != 1 {
		t.Errorf("sample 6: TetraIndex = %d, want 1 (crossed into the second tetra)", samples[6].TetraIndex)
	}
	for i := 7; i < 10; i++ {
		if samples[i].TetraIndex != -1 {
			t.Errorf("sample %d: TetraIndex = %d, want -1 (march terminated on leaving the two-tetra mesh)", i, samples[i].TetraIndex)
		}
	}

	for i := 0; i <= 6; i++ {
		if !samples[i].Bary.Inside(1e-6) {
			t.Errorf("sample %d: bary %+v has a component below -eps", i, samples[i].Bary)
		}
	}
}

func TestMarchStartOutsideMesh(t *testing.T) {
	tets, topo := twoTetraChain()
	samples := March(tets, topo, 0, MaxStartT+1, 0.1, 10, vec3.Vec{}, vec3.Vec{X: 1})
	for i, s := range samples {
		if s.TetraIndex != -1 {
			t.Errorf("sample %d: TetraIndex = %d, want -1 (start_t > MaxStartT emits zero samples)", i, s.TetraIndex)
		}
	}
}

func TestMarchInvalidStartTetra(t *testing.T) {
	tets, topo := twoTetraChain()
	samples := March(tets, topo, int32(len(tets)), 0, 0.1, 5, vec3.Vec{}, vec3.Vec{X: 1})
	for i, s := range samples {
		if s.TetraIndex != -1 {
			t.Errorf("sample %d: TetraIndex = %d, want -1 for an out-of-range start tetra", i, s.TetraIndex)
		}
	}
}

func TestMarchBatchMatchesMarch(t *testing.T) {
	tets, topo := twoTetraChain()
	rays := []MarchRay{
		{StartTet: 0, StartT: 0, Origin: vec3.Vec{X: 0.05, Y: 0.05, Z: 0.05}, Dir: vec3.Vec{X: 1, Y: 1, Z: 1}},
		{StartTet: 0, StartT: 0, Origin: vec3.Vec{X: 0.1, Y: 0.05, Z: 0.05}, Dir: vec3.Vec{X: 1, Y: 1, Z: 1}},
	}
	got := MarchBatch(tets, topo, rays, 0.05, 10, 2)
	for i, r := range rays {
		want := March(tets, topo, r.StartTet, r.StartT, 0.05, 10, r.Origin, r.Dir)
		for j := range want {
			if got[i][j] != want[j] {
				t.Errorf("ray %d sample %d: MarchBatch=%+v March=%+v", i, j, got[i][j], want[j])
			}
		}
	}
}
