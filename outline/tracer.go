package outline

import (
	"log"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
)

// DefaultMaxSteps is the default cap on the number of contour points that a
// Tracer will produce before giving up.
const DefaultMaxSteps = 100000

// ErrNoContour is returned (possibly wrapped) when no contour can be traced
// through a mesh.
var ErrNoContour = errors.New("no contour")

// A Tracer walks the outer boundary of a SegmentMesh.
//
// The walk starts at the leftmost vertex and proceeds counter-clockwise,
// always taking the sharpest available left turn. Whenever a step would
// pass over another segment, the walk stops at the crossing and continues
// along the crossed segment, so that the resulting polygon encloses the
// whole wireframe. A step that ends on a vertex lying inside another segment,
// or that passes exactly through a vertex, stops at that vertex and chooses
// its next direction among every segment meeting there.
type Tracer struct {
	// MaxSteps caps the number of contour points.
	//
	// If 0, DefaultMaxSteps is used.
	MaxSteps int

	// Verbose enables logging of every step.
	Verbose bool
}

// Trace traces the contour of m with a default Tracer capped at maxSteps.
func Trace(m *SegmentMesh, maxSteps int) (*Contour, error) {
	t := &Tracer{MaxSteps: maxSteps}
	return t.Trace(m)
}

// Trace computes the contour of m.
//
// The mesh must not be modified while tracing. If the step cap is reached,
// the partial contour is returned with the Truncated status.
func (t *Tracer) Trace(m *SegmentMesh) (*Contour, error) {
	maxSteps := t.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	start, ok := m.Leftmost()
	if !ok {
		return nil, errors.Wrap(ErrNoContour, "empty mesh")
	}
	if len(m.Adjacent(start)) == 0 {
		return nil, errors.Wrapf(ErrNoContour, "start vertex %d has no segments", start)
	}

	startPoint := m.Vertices[start]
	state := &traceState{
		Mesh:      m,
		Anchor:    VertexAnchor{Index: start},
		Point:     startPoint,
		Prev:      startPoint.Add(model2d.XY(-1, 1)),
		LastIndex: -1,
	}
	res := &Contour{
		Points:  []Point{startPoint},
		Anchors: []Anchor{state.Anchor},
	}

	for len(res.Points) < maxSteps {
		if err := state.Step(); err != nil {
			return nil, errors.Wrapf(err, "step %d", len(res.Points))
		}
		if t.Verbose {
			log.Printf("step %d: %v (%T)", len(res.Points), state.Point, state.Anchor)
		}
		res.Points = append(res.Points, state.Point)
		res.Anchors = append(res.Anchors, state.Anchor)
		if state.Point == startPoint {
			res.Status = Closed
			return res, nil
		}
	}

	if t.Verbose {
		log.Printf("trace truncated after %d points", len(res.Points))
	}
	res.Status = Truncated
	return res, nil
}

type traceState struct {
	Mesh *SegmentMesh

	Anchor Anchor
	Point  Point
	Prev   Point

	// LastIndex is the vertex that the previous step departed from, or
	// -1 before the first step.
	LastIndex int

	// Junction lists extra vertices reachable from the current vertex
	// through segments that pass over it without ending there.
	Junction []int
}

// Step moves the walk to the next contour point.
func (t *traceState) Step() error {
	var target int
	switch anchor := t.Anchor.(type) {
	case VertexAnchor:
		var ok bool
		target, ok = t.turn(anchor.Index)
		if !ok {
			return errors.Wrapf(ErrNoContour, "no way out of vertex %d", anchor.Index)
		}
	case CrossingAnchor:
		target = anchor.Left
	}

	from := t.Anchor.departure()
	var nextAnchor Anchor
	var nextPoint Point
	var junction []int
	if hit, ok := t.crossing(target); ok {
		if hit.Vertex >= 0 {
			nextAnchor = VertexAnchor{Index: hit.Vertex}
			nextPoint = t.Mesh.Vertices[hit.Vertex]
			junction = hit.Outward
		} else {
			hit.Anchor.Along = Segment{from, target}
			nextAnchor = hit.Anchor
			nextPoint = hit.Point
		}
	} else {
		nextAnchor = VertexAnchor{Index: target}
		nextPoint = t.Mesh.Vertices[target]
	}
	if nextPoint == t.Point {
		return errors.Wrap(ErrNoContour, "step does not make progress")
	}

	t.LastIndex = from
	t.Prev = t.Point
	t.Point = nextPoint
	t.Anchor = nextAnchor
	t.Junction = junction
	return nil
}

// turn selects the neighbor of a vertex with the smallest counter-clockwise
// angle from the incoming direction.
//
// The vertex we came from is only used if there is nothing else.
func (t *traceState) turn(index int) (int, bool) {
	back := t.Prev.Sub(t.Point)

	best := -1
	var bestAngle, bestDist float64
	canReturn := false
	consider := func(neighbor int) {
		dir := t.Mesh.Vertices[neighbor].Sub(t.Point)
		if dir == (Point{}) {
			return
		}
		if neighbor == t.LastIndex {
			canReturn = true
			return
		}
		angle := leftAngle(back, dir)
		if angle == 0 {
			angle = 2 * math.Pi
		}
		dist := dir.Norm()
		if best == -1 || angle < bestAngle || (angle == bestAngle && dist < bestDist) {
			best = neighbor
			bestAngle = angle
			bestDist = dist
		}
	}
	for _, neighbor := range t.Mesh.Adjacent(index) {
		consider(neighbor)
	}
	for _, neighbor := range t.Junction {
		consider(neighbor)
	}
	if best == -1 {
		if canReturn {
			return t.LastIndex, true
		}
		return 0, false
	}
	return best, true
}

// A crossingHit is the first place where a step cuts across the mesh.
type crossingHit struct {
	// Anchor is the crossing, without its Along field.
	Anchor CrossingAnchor
	Point  Point

	// Vertex is set to a vertex index when the hit lands exactly on a
	// vertex, either the target of the step or an endpoint of the crossed
	// segment. Otherwise it is -1.
	Vertex int

	// Outward lists the outward endpoints of every crossed segment that
	// passes through Vertex.
	Outward []int
}

type crossingCandidate struct {
	Left   int
	Right  int
	Vertex int
	R      float64
	Angle  float64
	Dist   float64
}

// crossing finds the first segment that the step towards target would cut
// across, entering the exterior of the walk.
func (t *traceState) crossing(target int) (*crossingHit, bool) {
	targetPoint := t.Mesh.Vertices[target]
	d := targetPoint.Sub(t.Point)

	var candidates []crossingCandidate
	best := -1
	for _, seg := range t.Mesh.Segments {
		if seg.IsLoop() || seg.Touches(target) || t.Anchor.excludes(seg) {
			continue
		}
		p1, p2 := t.Mesh.SegmentPoints(seg)
		r, s, ok := segmentIntersection(t.Point, d, p1, p2.Sub(p1))
		if !ok || r <= 0 || r > 1 || s < 0 || s > 1 {
			continue
		}

		left, right := seg[0], seg[1]
		side := det(d, p1.Sub(t.Point))
		if side2 := det(d, p2.Sub(t.Point)); side2 < side {
			left, right = seg[1], seg[0]
			side = side2
		}
		if side >= 0 {
			// Neither endpoint leads outward.
			continue
		}

		vertex := -1
		if r == 1 {
			vertex = target
		} else if s == 0 {
			vertex = seg[0]
		} else if s == 1 {
			vertex = seg[1]
		}

		x := t.Point.Add(d.Scale(r))
		if x == t.Point {
			continue
		}
		outward := t.Mesh.Vertices[left]
		c := crossingCandidate{
			Left:   left,
			Right:  right,
			Vertex: vertex,
			R:      r,
			Angle:  leftAngle(t.Point.Sub(x), outward.Sub(x)),
			Dist:   outward.Dist(x),
		}
		candidates = append(candidates, c)
		if best == -1 {
			best = len(candidates) - 1
			continue
		}
		b := candidates[best]
		if c.R < b.R || (c.R == b.R && (c.Angle < b.Angle ||
			(c.Angle == b.Angle && c.Dist < b.Dist))) {
			best = len(candidates) - 1
		}
	}
	if best == -1 {
		return nil, false
	}

	b := candidates[best]
	res := &crossingHit{
		Anchor: CrossingAnchor{Left: b.Left, Right: b.Right},
		Point:  t.Point.Add(d.Scale(b.R)),
		Vertex: b.Vertex,
	}
	if b.Vertex >= 0 {
		for _, c := range candidates {
			if c.Vertex == b.Vertex {
				res.Outward = append(res.Outward, c.Left)
			}
		}
	}
	return res, true
}
