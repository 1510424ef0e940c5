package outline

import (
	"math"

	"github.com/pkg/errors"
)

// Status indicates how a trace ended.
type Status int

const (
	// Closed means the walk returned to its starting point.
	Closed Status = iota

	// Truncated means the walk hit the step cap first.
	Truncated
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "closed"
	case Truncated:
		return "truncated"
	}
	return "unknown"
}

// A Contour is the result of tracing a SegmentMesh.
//
// Points and Anchors are parallel. For a closed contour, the last point is
// equal to the first one.
type Contour struct {
	Points  []Point
	Anchors []Anchor
	Status  Status
}

func (c *Contour) NumPoints() int {
	return len(c.Points)
}

// NumCrossings counts the points that were produced by cutting across a
// segment.
func (c *Contour) NumCrossings() int {
	var n int
	for _, a := range c.Anchors {
		if _, ok := a.(CrossingAnchor); ok {
			n++
		}
	}
	return n
}

// Perimeter computes the total length of the walk.
func (c *Contour) Perimeter() float64 {
	var res float64
	for i := 1; i < len(c.Points); i++ {
		res += c.Points[i].Dist(c.Points[i-1])
	}
	return res
}

// Area computes the signed area of the polygon, implicitly closing it if the
// contour was truncated.
//
// Contours produced by a Tracer wind counter-clockwise, so the area is
// positive for non-degenerate closed contours.
func (c *Contour) Area() float64 {
	var res float64
	for i, p := range c.Points {
		next := c.Points[(i+1)%len(c.Points)]
		res += det(p, next)
	}
	return res / 2
}

// Check verifies that c is consistent with the mesh it was traced from.
//
// It checks that the contour starts at the leftmost vertex, that every anchor
// refers to the point it was recorded with, and that no step passes over a
// mesh segment other than the ones its endpoints are anchored on.
func (c *Contour) Check(m *SegmentMesh, epsilon float64) error {
	if len(c.Points) == 0 {
		return errors.New("check contour: no points")
	}
	if len(c.Points) != len(c.Anchors) {
		return errors.Errorf("check contour: %d points but %d anchors",
			len(c.Points), len(c.Anchors))
	}
	if start, ok := m.Leftmost(); !ok || m.Vertices[start] != c.Points[0] {
		return errors.New("check contour: does not start at leftmost vertex")
	}
	closed := len(c.Points) > 1 && c.Points[len(c.Points)-1] == c.Points[0]
	if closed != (c.Status == Closed) {
		return errors.Errorf("check contour: status %s does not match endpoints", c.Status)
	}

	for i, a := range c.Anchors {
		p := c.Points[i]
		switch a := a.(type) {
		case VertexAnchor:
			if a.Index < 0 || a.Index >= len(m.Vertices) || m.Vertices[a.Index] != p {
				return errors.Errorf("check contour: point %d is not at vertex %d", i, a.Index)
			}
		case CrossingAnchor:
			if !a.Crossed().inRange(m) || !a.Along.inRange(m) {
				return errors.Errorf("check contour: point %d has invalid anchor", i)
			}
			p1, p2 := m.SegmentPoints(a.Crossed())
			if segmentDist(p1, p2, p) > epsilon {
				return errors.Errorf("check contour: point %d is not on segment %v", i,
					a.Crossed())
			}
		}
	}

	for i := 1; i < len(c.Points); i++ {
		p1, p2 := c.Points[i-1], c.Points[i]
		for _, seg := range m.Segments {
			if anchoredOn(c.Anchors[i-1], seg) || anchoredOn(c.Anchors[i], seg) {
				continue
			}
			q1, q2 := m.SegmentPoints(seg)
			if properlyCrosses(p1, p2, q1, q2) {
				return errors.Errorf("check contour: step %d crosses segment %v", i, seg)
			}
		}
	}
	return nil
}

// anchoredOn checks if a contour point lies on s because of its anchor.
func anchoredOn(a Anchor, s Segment) bool {
	switch a := a.(type) {
	case VertexAnchor:
		return s.Touches(a.Index)
	case CrossingAnchor:
		return s.Equivalent(a.Crossed()) || s.Equivalent(a.Along)
	}
	return false
}

func (s Segment) inRange(m *SegmentMesh) bool {
	return s[0] >= 0 && s[1] >= 0 && s[0] < len(m.Vertices) && s[1] < len(m.Vertices)
}

// segmentDist computes the distance from p to the segment p1-p2.
func segmentDist(p1, p2, p Point) float64 {
	v := p2.Sub(p1)
	norm := v.Dot(v)
	if norm == 0 {
		return p.Dist(p1)
	}
	frac := math.Max(0, math.Min(1, p.Sub(p1).Dot(v)/norm))
	return p.Dist(p1.Add(v.Scale(frac)))
}
