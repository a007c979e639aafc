package mesh

import (
	"fmt"

	"github.com/deadsy/bvhx/vec3"
)

// Tetra is a tetrahedron, four vertices in R3. Vertex ordering follows the
// CalculiX C3D4 convention: http://www.dhondt.de/ccx_2.20.pdf
type Tetra [4]vec3.Vec

// face lists the three vertex indices making up each of the tetrahedron's
// four faces, in the order Topology's neighbor slots refer to them.
var face = [4][3]int{
	{1, 2, 3}, // face 0: opposite vertex 0
	{0, 2, 3}, // face 1: opposite vertex 1
	{0, 1, 3}, // face 2: opposite vertex 2
	{0, 1, 2}, // face 3: opposite vertex 3
}

// Face returns the three vertices of face i (i in [0,3]).
func (t Tetra) Face(i int) (a, b, c vec3.Vec) {
	f := face[i]
	return t[f[0]], t[f[1]], t[f[2]]
}

// Neighbors is the four neighbor-tetra indices of one tetrahedron, one per
// face, -1 for a boundary face. Index i borders the tetra sharing Face(i).
type Neighbors [4]int32

// Topology is the per-tetra face adjacency table for a tetrahedral mesh.
type Topology []Neighbors

// TetraBatch is one batch element's tetrahedral mesh: tetras[T].
type TetraBatch []Tetra

// Validate checks that the adjacency table is symmetric: if topology[t]
// names t2 across some face, then topology[t2] must name t back across the
// shared face. An asymmetric table is a contract violation the marcher
// would otherwise silently walk into (an exit face whose "neighbor" does
// not actually border it). This is not general mesh validation (out of
// scope); it only checks the one invariant the marcher's face walk
// depends on.
func (topo Topology) Validate() error {
	for t, nb := range topo {
		for face, other := range nb {
			if other < 0 {
				continue
			}
			if int(other) >= len(topo) {
				return fmt.Errorf("tetra %d face %d: neighbor %d out of range", t, face, other)
			}
			found := false
			for _, back := range topo[other] {
				if int(back) == t {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("tetra %d face %d: neighbor %d does not reciprocate", t, face, other)
			}
		}
	}
	return nil
}

// Builder assembles a TetraBatch and Topology from individually-added
// tetrahedra, deduplicating vertices via a coordinate-keyed lookup map.
type Builder struct {
	verts  []vec3.Vec
	lookup map[[3]float64]uint32
	tets   [][4]uint32
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		lookup: map[[3]float64]uint32{},
	}
}

// AddTetra appends a tetrahedron given by four vertices, deduplicating
// shared vertices, and returns its index in the eventual TetraBatch.
func (b *Builder) AddTetra(a, c, d, e vec3.Vec) int {
	idx := [4]uint32{b.addVertex(a), b.addVertex(c), b.addVertex(d), b.addVertex(e)}
	b.tets = append(b.tets, idx)
	return len(b.tets) - 1
}

func (b *Builder) addVertex(v vec3.Vec) uint32 {
	key := [3]float64{v.X, v.Y, v.Z}
	if id, ok := b.lookup[key]; ok {
		return id
	}
	b.verts = append(b.verts, v)
	id := uint32(len(b.verts) - 1)
	b.lookup[key] = id
	return id
}

// Batch materializes the accumulated tetrahedra into a TetraBatch.
func (b *Builder) Batch() TetraBatch {
	out := make(TetraBatch, len(b.tets))
	for i, idx := range b.tets {
		out[i] = Tetra{b.verts[idx[0]], b.verts[idx[1]], b.verts[idx[2]], b.verts[idx[3]]}
	}
	return out
}

// Topology derives the face-adjacency table for the accumulated
// tetrahedra: two tetrahedra are neighbors across face i/j if those faces
// name the same three (deduplicated) vertex ids, regardless of winding.
// Used by marcher callers that build a mesh with Builder instead of
// supplying a Topology of their own.
func (b *Builder) Topology() Topology {
	type faceKey [3]uint32
	owner := map[faceKey][2]int{} // face -> (tetra index, face index), first occupant only

	key := func(idx [4]uint32, f int) faceKey {
		v := face[f]
		k := faceKey{idx[v[0]], idx[v[1]], idx[v[2]]}
		if k[0] > k[1] {
			k[0], k[1] = k[1], k[0]
		}
		if k[1] > k[2] {
			k[1], k[2] = k[2], k[1]
		}
		if k[0] > k[1] {
			k[0], k[1] = k[1], k[0]
		}
		return k
	}

	topo := make(Topology, len(b.tets))
	for t := range topo {
		topo[t] = Neighbors{-1, -1, -1, -1}
	}

	for t, idx := range b.tets {
		for f := 0; f < 4; f++ {
			k := key(idx, f)
			if first, ok := owner[k]; ok {
				topo[t][f] = int32(first[0])
				topo[first[0]][first[1]] = int32(t)
				delete(owner, k)
				continue
			}
			owner[k] = [2]int{t, f}
		}
	}
	return topo
}
