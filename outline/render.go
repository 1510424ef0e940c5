package outline

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
)

const (
	DefaultRenderSize         = 512
	DefaultRenderPadding      = 10.0
	DefaultRenderLineWidth    = 1.0
	DefaultRenderContourWidth = 2.0
)

// RenderOptions controls how meshes and contours are drawn.
//
// Zero fields are replaced by the corresponding defaults. A negative Padding
// draws without any margin.
type RenderOptions struct {
	// Size is the length, in pixels, of the longer side of the output.
	Size int

	// Padding is the margin, in pixels, around the drawing.
	Padding float64

	LineWidth    float64
	ContourWidth float64
}

func (r *RenderOptions) withDefaults() RenderOptions {
	var res RenderOptions
	if r != nil {
		res = *r
	}
	if res.Size == 0 {
		res.Size = DefaultRenderSize
	}
	if res.Padding == 0 {
		res.Padding = DefaultRenderPadding
	} else if res.Padding < 0 {
		res.Padding = 0
	}
	if res.LineWidth == 0 {
		res.LineWidth = DefaultRenderLineWidth
	}
	if res.ContourWidth == 0 {
		res.ContourWidth = DefaultRenderContourWidth
	}
	return res
}

// fitTransform maps mesh coordinates to image coordinates, with the origin
// at the top left and the y axis pointing down.
type fitTransform struct {
	Min     Point
	Scale   float64
	Padding float64
	Width   int
	Height  int
}

func newFitTransform(m *SegmentMesh, c *Contour, opts RenderOptions) *fitTransform {
	min, max, ok := m.Bounds()
	if !ok && c != nil && len(c.Points) > 0 {
		min, max = c.Points[0], c.Points[0]
	}
	if c != nil {
		for _, p := range c.Points {
			min = min.Min(p)
			max = max.Max(p)
		}
	}
	size := max.Sub(min)
	extent := math.Max(size.X, size.Y)
	inner := math.Max(1, float64(opts.Size)-2*opts.Padding)
	scale := 1.0
	if extent > 0 {
		scale = inner / extent
	}
	return &fitTransform{
		Min:     min,
		Scale:   scale,
		Padding: opts.Padding,
		Width:   int(math.Ceil(size.X*scale + 2*opts.Padding)),
		Height:  int(math.Ceil(size.Y*scale + 2*opts.Padding)),
	}
}

func (f *fitTransform) Apply(p Point) Point {
	p = p.Sub(f.Min).Scale(f.Scale)
	return model2d.XY(p.X+f.Padding, float64(f.Height)-(p.Y+f.Padding))
}

// contourPath gets the points of c to draw, and whether to close the path.
//
// The repeated endpoint of a closed contour is dropped.
func contourPath(c *Contour) ([]Point, bool) {
	if c == nil || len(c.Points) < 2 {
		return nil, false
	}
	if c.Status == Closed {
		return c.Points[:len(c.Points)-1], true
	}
	return c.Points, false
}
