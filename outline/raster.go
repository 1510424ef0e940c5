package outline

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// RenderPNG draws the wireframe of m in white and the contour c in red on a
// black background.
//
// The contour may be nil to draw only the mesh. If opts is nil, defaults are
// used.
func RenderPNG(m *SegmentMesh, c *Contour, opts *RenderOptions) image.Image {
	return renderContext(m, c, opts).Image()
}

// WritePNG encodes the output of RenderPNG to w.
func WritePNG(w io.Writer, m *SegmentMesh, c *Contour, opts *RenderOptions) error {
	return errors.Wrap(renderContext(m, c, opts).EncodePNG(w), "write png")
}

// SavePNG writes the output of RenderPNG to a file.
func SavePNG(path string, m *SegmentMesh, c *Contour, opts *RenderOptions) error {
	return errors.Wrap(renderContext(m, c, opts).SavePNG(path), "save png")
}

func renderContext(m *SegmentMesh, c *Contour, opts *RenderOptions) *gg.Context {
	o := opts.withDefaults()
	f := newFitTransform(m, c, o)

	ctx := gg.NewContext(f.Width, f.Height)
	ctx.SetRGB(0, 0, 0)
	ctx.Clear()

	ctx.SetRGB(1, 1, 1)
	ctx.SetLineWidth(o.LineWidth)
	for _, seg := range m.Segments {
		if seg.IsLoop() {
			continue
		}
		p1, p2 := m.SegmentPoints(seg)
		p1, p2 = f.Apply(p1), f.Apply(p2)
		ctx.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
		ctx.Stroke()
	}

	if points, closed := contourPath(c); len(points) > 0 {
		ctx.SetRGB(1, 0, 0)
		ctx.SetLineWidth(o.ContourWidth)
		for i, p := range points {
			p = f.Apply(p)
			if i == 0 {
				ctx.MoveTo(p.X, p.Y)
			} else {
				ctx.LineTo(p.X, p.Y)
			}
		}
		if closed {
			ctx.ClosePath()
		}
		ctx.Stroke()
	}

	return ctx
}
