package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/mesh-outline/outline"
)

func main() {
	var size int
	var padding float64
	var lineWidth float64
	var contourWidth float64
	var meshOnly bool
	flag.IntVar(&size, "size", outline.DefaultRenderSize, "length of the longer image side")
	flag.Float64Var(&padding, "padding", outline.DefaultRenderPadding,
		"margin around the drawing (0 for none)")
	flag.Float64Var(&lineWidth, "line-width", outline.DefaultRenderLineWidth,
		"stroke width for mesh segments (0 uses the default)")
	flag.Float64Var(&contourWidth, "contour-width", outline.DefaultRenderContourWidth,
		"stroke width for the contour (0 uses the default)")
	flag.BoolVar(&meshOnly, "mesh-only", false, "do not draw the contour")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: render_contour [flags] <mesh.bin> <contour.bin> <output.png|svg>")
		fmt.Fprintln(os.Stderr, "       render_contour -mesh-only [flags] <mesh.bin> <output.png|svg>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 && !(meshOnly && len(args) == 2) {
		flag.Usage()
		os.Exit(1)
	}
	meshPath, outputPath := args[0], args[len(args)-1]

	log.Println("Loading mesh...")
	mesh, err := outline.Load(meshPath, outline.ReadSegmentMesh)
	essentials.Must(err)

	var contour *outline.Contour
	if !meshOnly {
		log.Println("Loading contour...")
		contour, err = outline.Load(args[1], outline.ReadContour)
		essentials.Must(err)
	}

	if padding == 0 {
		// RenderOptions treats a zero padding as unset.
		padding = -1
	}
	opts := &outline.RenderOptions{
		Size:         size,
		Padding:      padding,
		LineWidth:    lineWidth,
		ContourWidth: contourWidth,
	}

	log.Println("Rendering...")
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".png":
		essentials.Must(outline.SavePNG(outputPath, mesh, contour, opts))
	case ".svg":
		essentials.Must(outline.Save(outputPath, mesh,
			func(w io.Writer, m *outline.SegmentMesh) error {
				return outline.WriteSVG(w, m, contour, opts)
			}))
	default:
		essentials.Die("unknown output extension:", filepath.Ext(outputPath))
	}
}
