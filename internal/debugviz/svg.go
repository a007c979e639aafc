// Package debugviz renders a BVH's node boxes to SVG or PNG, and a
// triangle mesh to DXF, for visual debugging.
package debugviz

import (
	"io"

	"github.com/ajstarks/svgo"

	"github.com/deadsy/bvhx/lbvh"
	"github.com/deadsy/bvhx/vec3"
)

// SVGOptions controls WriteSVG's projection and styling.
type SVGOptions struct {
	Width, Height int
	// Axes selects which two Vec components become (x, y) in the SVG
	// plane; 0=X, 1=Y, 2=Z. Default (zero value) projects onto XY.
	AxisX, AxisY int
}

// WriteSVG draws every node box in tree as a rectangle, internal nodes
// in a blue stroke and leaves (triangles) in a red one, using
// github.com/ajstarks/svgo. Useful for eyeballing whether a tree's
// bounding boxes nest the way lbvh.checkInvariants expects.
func WriteSVG(w io.Writer, tree *lbvh.Tree, box vec3.Box, opts SVGOptions) {
	if opts.Width == 0 {
		opts.Width = 800
	}
	if opts.Height == 0 {
		opts.Height = 800
	}
	if opts.AxisX == 0 && opts.AxisY == 0 {
		opts.AxisY = 1
	}

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:white")

	project := func(v vec3.Vec) (int, int) {
		return projectAxis(v, opts.AxisX, box, opts.Width), projectAxis(v, opts.AxisY, box, opts.Height)
	}

	drawBox := func(b vec3.Box, style string) {
		x0, y0 := project(b.Min)
		x1, y1 := project(b.Max)
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		canvas.Rect(x0, y0, x1-x0, y1-y0, style)
	}

	for i := range tree.Internals {
		drawBox(tree.Internals[i].Box, "fill:none;stroke:#4444ff;stroke-width:1")
	}
	for i := range tree.Leaves {
		drawBox(tree.Leaves[i].Box, "fill:none;stroke:#ff4444;stroke-width:1")
	}

	canvas.End()
}

func projectAxis(v vec3.Vec, axis int, box vec3.Box, pixels int) int {
	value := v.Component(axis)
	lo := box.Min.Component(axis)
	hi := box.Max.Component(axis)
	span := hi - lo
	if span == 0 {
		return pixels / 2
	}
	return int((value - lo) / span * float64(pixels))
}
