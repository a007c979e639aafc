package debugviz

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/deadsy/bvhx/lbvh"
	"github.com/deadsy/bvhx/vec3"
)

// WritePNG rasterizes the same projection WriteSVG draws, via
// llgcode/draw2d's image-backed graphic context, and labels each leaf
// with its triangle index using golang/freetype + golang.org/x/image's
// bundled Go Regular font. path is a PNG file path, not a writer,
// since draw2dimg's PNG encoder writes directly to a named file.
func WritePNG(path string, tree *lbvh.Tree, box vec3.Box, opts SVGOptions) error {
	if opts.Width == 0 {
		opts.Width = 800
	}
	if opts.Height == 0 {
		opts.Height = 800
	}
	if opts.AxisX == 0 && opts.AxisY == 0 {
		opts.AxisY = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	gc := draw2dimg.NewGraphicContext(img)

	project := func(v vec3.Vec) (float64, float64) {
		return float64(projectAxis(v, opts.AxisX, box, opts.Width)), float64(projectAxis(v, opts.AxisY, box, opts.Height))
	}

	drawBox := func(b vec3.Box, c color.Color) {
		x0, y0 := project(b.Min)
		x1, y1 := project(b.Max)
		gc.SetStrokeColor(c)
		gc.SetLineWidth(1)
		gc.MoveTo(x0, y0)
		gc.LineTo(x1, y0)
		gc.LineTo(x1, y1)
		gc.LineTo(x0, y1)
		gc.LineTo(x0, y0)
		gc.Close()
		gc.Stroke()
	}

	for i := range tree.Internals {
		drawBox(tree.Internals[i].Box, color.RGBA{R: 0x44, G: 0x44, B: 0xff, A: 0xff})
	}
	for i := range tree.Leaves {
		drawBox(tree.Leaves[i].Box, color.RGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff})
	}

	if err := labelLeaves(img, tree, box, opts, project); err != nil {
		return fmt.Errorf("debugviz: label leaves: %w", err)
	}

	return draw2dimg.SaveToPngFile(path, img)
}

// labelLeaves draws each leaf's triangle index next to its box, via a
// freetype.Context rasterizing golang.org/x/image's embedded Go Regular
// font directly onto img (a lower-level path than draw2d's own
// FillStringAt, used here specifically to exercise golang/freetype).
func labelLeaves(img *image.RGBA, tree *lbvh.Tree, box vec3.Box, opts SVGOptions, project func(vec3.Vec) (float64, float64)) error {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(10)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(color.Black))

	for i := range tree.Leaves {
		leaf := &tree.Leaves[i]
		x, y := project(leaf.Box.Min)
		pt := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
		if _, err := ctx.DrawString(strconv.Itoa(int(leaf.Tri)), pt); err != nil {
			return err
		}
	}
	return nil
}
