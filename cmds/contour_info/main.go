package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/mesh-outline/outline"
)

func main() {
	var meshPath string
	var epsilon float64
	flag.StringVar(&meshPath, "mesh", "", "if set, check the contour against this segment mesh")
	flag.Float64Var(&epsilon, "epsilon", 1e-8, "tolerance for crossing positions when checking")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: contour_info [flags] <contour.bin>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := args[0]

	log.Println("Loading contour...")
	contour, err := outline.Load(inputPath, outline.ReadContour)
	essentials.Must(err)

	fmt.Println("Status:", contour.Status)
	fmt.Println("Number of points:", contour.NumPoints())
	fmt.Println("Number of crossings:", contour.NumCrossings())
	fmt.Println("Perimeter:", contour.Perimeter())
	fmt.Println("Area:", contour.Area())

	if meshPath != "" {
		log.Println("Loading mesh...")
		mesh, err := outline.Load(meshPath, outline.ReadSegmentMesh)
		essentials.Must(err)
		fmt.Println("Mesh vertices:", mesh.NumVertices())
		fmt.Println("Mesh segments:", mesh.NumSegments())
		if err := contour.Check(mesh, epsilon); err != nil {
			essentials.Die(err)
		}
		fmt.Println("Check: ok")
	}
}
