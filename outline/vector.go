package outline

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/pkg/errors"
)

// WriteSVG draws the same picture as RenderPNG as an SVG document.
//
// A closed contour becomes a polygon, and a truncated one a polyline.
// Coordinates are rounded to whole pixels.
func WriteSVG(w io.Writer, m *SegmentMesh, c *Contour, opts *RenderOptions) error {
	o := opts.withDefaults()
	f := newFitTransform(m, c, o)

	ew := &errWriter{W: w}
	canvas := svg.New(ew)
	canvas.Start(f.Width, f.Height)
	canvas.Rect(0, 0, f.Width, f.Height, "fill:black")

	lineStyle := fmt.Sprintf("stroke:white;stroke-width:%g", o.LineWidth)
	for _, seg := range m.Segments {
		if seg.IsLoop() {
			continue
		}
		p1, p2 := m.SegmentPoints(seg)
		x1, y1 := pixel(f.Apply(p1))
		x2, y2 := pixel(f.Apply(p2))
		canvas.Line(x1, y1, x2, y2, lineStyle)
	}

	if points, closed := contourPath(c); len(points) > 0 {
		xs := make([]int, len(points))
		ys := make([]int, len(points))
		for i, p := range points {
			xs[i], ys[i] = pixel(f.Apply(p))
		}
		style := fmt.Sprintf("fill:none;stroke:red;stroke-width:%g", o.ContourWidth)
		if closed {
			canvas.Polygon(xs, ys, style)
		} else {
			canvas.Polyline(xs, ys, style)
		}
	}

	canvas.End()
	return ew.Err
}

func pixel(p Point) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// errWriter records the first write error, since svg.SVG does not report
// errors itself.
type errWriter struct {
	W   io.Writer
	Err error
}

func (e *errWriter) Write(data []byte) (int, error) {
	if e.Err != nil {
		return 0, e.Err
	}
	n, err := e.W.Write(data)
	if err != nil {
		e.Err = errors.Wrap(err, "write svg")
	}
	return n, err
}
