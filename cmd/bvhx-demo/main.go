//-----------------------------------------------------------------------------
/*

Load a 3MF mesh, build an LBVH over its triangles, and run a single
nearest-point query against it, optionally writing SVG/PNG debug
visualizations of the resulting tree and a DXF export of the mesh.

*/
//-----------------------------------------------------------------------------

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hpinc/go3mf"

	"github.com/deadsy/bvhx/internal/debugviz"
	"github.com/deadsy/bvhx/lbvh"
	"github.com/deadsy/bvhx/mesh"
	"github.com/deadsy/bvhx/query"
	"github.com/deadsy/bvhx/traverse"
	"github.com/deadsy/bvhx/vec3"
)

//-----------------------------------------------------------------------------

func load3MF(path string) ([]mesh.Triangle, error) {
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var model go3mf.Model
	if err := r.Decode(&model); err != nil {
		return nil, err
	}

	var tris []mesh.Triangle
	for _, item := range model.Resources.Objects {
		if item.Mesh == nil {
			continue
		}
		verts := make([]vec3.Vec, len(item.Mesh.Vertices.Vertex))
		for i, v := range item.Mesh.Vertices.Vertex {
			verts[i] = vec3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
		}
		for _, t := range item.Mesh.Triangles.Triangle {
			tris = append(tris, mesh.Triangle{verts[t.V1], verts[t.V2], verts[t.V3]})
		}
	}
	return tris, nil
}

//-----------------------------------------------------------------------------

func main() {
	path := flag.String("mesh", "", "path to a .3mf mesh file")
	svgOut := flag.String("svg", "", "optional SVG debug output path")
	pngOut := flag.String("png", "", "optional PNG debug output path")
	dxfOut := flag.String("dxf", "", "optional DXF debug output path")
	qx := flag.Float64("x", 0, "query point x")
	qy := flag.Float64("y", 0, "query point y")
	qz := flag.Float64("z", 0, "query point z")
	flag.Parse()

	if *path == "" {
		log.Fatal("error: -mesh is required")
	}

	tris, err := load3MF(*path)
	if err != nil {
		log.Fatalf("error: %s", err)
	}
	if len(tris) == 0 {
		log.Fatal("error: mesh has no triangles")
	}

	tree := lbvh.Build(tris, 0)

	opts := query.Options{Capacity: traverse.Cap256}
	results, err := query.Nearest(context.Background(), [][]mesh.Triangle{tris}, [][]vec3.Vec{{{X: *qx, Y: *qy, Z: *qz}}}, opts)
	if err != nil {
		log.Fatalf("error: %s", err)
	}
	r := results[0][0]
	log.Printf("nearest point: %+v face=%d dist2=%g", r.Point, r.Face, r.Distance)

	sceneBox := vec3.EmptyBox()
	for _, t := range tris {
		sceneBox = sceneBox.Union(t.Box())
	}

	if *svgOut != "" {
		f, err := os.Create(*svgOut)
		if err != nil {
			log.Fatalf("error: %s", err)
		}
		debugviz.WriteSVG(f, tree, sceneBox, debugviz.SVGOptions{})
		f.Close()
	}
	if *pngOut != "" {
		if err := debugviz.WritePNG(*pngOut, tree, sceneBox, debugviz.SVGOptions{}); err != nil {
			log.Fatalf("error: %s", err)
		}
	}
	if *dxfOut != "" {
		if err := debugviz.WriteDXF(*dxfOut, tris); err != nil {
			log.Fatalf("error: %s", err)
		}
	}
}

//-----------------------------------------------------------------------------
