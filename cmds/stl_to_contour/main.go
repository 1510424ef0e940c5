package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/mesh-outline/outline"
	"github.com/unixpickle/model3d/model3d"
)

func main() {
	var planes flagStrings = []string{"xy"}
	var maxSteps int
	var snap float64
	var noDedup bool
	var normalize bool
	var concurrency int
	var savePNG bool
	var saveSVG bool
	var saveMesh bool
	var imageSize int
	var verbose bool
	flag.Var(&planes, "planes", "projection planes (xy, xz or yz); may be comma-separated list")
	flag.IntVar(&maxSteps, "max-steps", outline.DefaultMaxSteps, "maximum number of contour points")
	flag.Float64Var(&snap, "snap", -1, "grid step for rounding coordinates before merging; "+
		"negative means a small fraction of the mesh size, and 0 disables rounding "+
		"(closed meshes usually need some rounding to trace correctly)")
	flag.BoolVar(&noDedup, "no-dedup", false, "do not merge coincident vertices")
	flag.BoolVar(&normalize, "normalize", false, "scale each projection into the unit square")
	flag.IntVar(&concurrency, "concurrency", 0, "number of projections to trace at once")
	flag.BoolVar(&savePNG, "png", false, "also save a PNG rendering next to each output")
	flag.BoolVar(&saveSVG, "svg", false, "also save an SVG rendering next to each output")
	flag.BoolVar(&saveMesh, "save-mesh", false, "also save the projected segment mesh")
	flag.IntVar(&imageSize, "image-size", outline.DefaultRenderSize, "size of rendered images")
	flag.BoolVar(&verbose, "verbose", false, "log every step of the trace")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: stl_to_contour [flags] <input.stl> <output.bin>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	log.Println("Loading mesh...")
	tris, err := outline.Load(inputPath, model3d.ReadSTL)
	essentials.Must(err)
	tris, removed := outline.FilterDegenerate(tris)
	if removed > 0 {
		log.Printf(" - removed %d invalid triangles", removed)
	}

	log.Println("Projecting...")
	meshes := make([]*outline.SegmentMesh, len(planes))
	for i, plane := range planes {
		proj, err := outline.ParseProjection(plane)
		essentials.Must(err)
		mesh := outline.NewSegmentMeshTriangles(tris, proj)
		if normalize {
			normalizeMesh(mesh)
		}
		if snap < 0 {
			step := mesh.SnapRelative(outline.DefaultSnapFraction)
			if verbose {
				log.Printf(" - %s: snapped to grid step %g", plane, step)
			}
		} else if snap > 0 {
			mesh.Snap(snap)
		}
		if !noDedup {
			mesh = mesh.Deduplicate()
		}
		log.Printf(" - %s: %d vertices, %d segments", plane, mesh.NumVertices(),
			mesh.NumSegments())
		meshes[i] = mesh
	}

	log.Println("Tracing contours...")
	tracer := &outline.Tracer{MaxSteps: maxSteps, Verbose: verbose}
	contours, errs := outline.TraceAll(meshes, tracer, concurrency)

	log.Println("Writing output...")
	for i, plane := range planes {
		if errs[i] != nil {
			essentials.Die(fmt.Sprintf("trace %s: %v", plane, errs[i]))
		}
		c := contours[i]
		log.Printf(" - %s: %s contour with %d points (%d crossings)", plane, c.Status,
			c.NumPoints(), c.NumCrossings())

		path := outputPath
		if len(planes) > 1 {
			path = suffixPath(outputPath, "_"+plane)
		}
		essentials.Must(outline.Save(path, c, outline.WriteContour))
		if saveMesh {
			essentials.Must(outline.Save(suffixPath(path, "_mesh"), meshes[i],
				outline.WriteSegmentMesh))
		}
		opts := &outline.RenderOptions{Size: imageSize}
		if savePNG {
			essentials.Must(outline.SavePNG(replaceExt(path, ".png"), meshes[i], c, opts))
		}
		if saveSVG {
			essentials.Must(outline.Save(replaceExt(path, ".svg"), c,
				func(w io.Writer, c *outline.Contour) error {
					return outline.WriteSVG(w, meshes[i], c, opts)
				}))
		}
	}
}

// normalizeMesh moves the bounding box of a mesh to the unit square while
// preserving its aspect ratio.
func normalizeMesh(m *outline.SegmentMesh) {
	min, max, ok := m.Bounds()
	if !ok {
		return
	}
	m.Translate(min.Scale(-1))
	size := max.Sub(min)
	if scale := math.Max(size.X, size.Y); scale > 0 {
		m.Scale(1 / scale)
	}
}

func suffixPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

type flagStrings []string

func (f *flagStrings) String() string {
	return strings.Join(*f, ",")
}

func (f *flagStrings) Set(value string) error {
	var res []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return fmt.Errorf("empty part in %q", value)
		}
		res = append(res, part)
	}
	*f = res
	return nil
}
