package debugviz

import (
	"github.com/yofu/dxf"

	"github.com/deadsy/bvhx/mesh"
)

// WriteDXF emits tris as a 3DFACE entity per triangle, via yofu/dxf, for
// loading the mesh a batch element's query results were computed against
// into a CAD viewer alongside the SVG/PNG box visualizations.
func WriteDXF(path string, tris []mesh.Triangle) error {
	d := dxf.NewDrawing()
	for _, tri := range tris {
		d.Face3(
			tri[0].X, tri[0].Y, tri[0].Z,
			tri[1].X, tri[1].Y, tri[1].Z,
			tri[2].X, tri[2].Y, tri[2].Z,
			tri[2].X, tri[2].Y, tri[2].Z, // degenerate 4th corner: a triangle is a 3DFACE with two coincident vertices
		)
	}
	return d.SaveAs(path)
}
