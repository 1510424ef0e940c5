package outline

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

func TestTraceTriangle(t *testing.T) {
	m := mustMesh(t, [][2]float64{{0, 0}, {2, 0}, {1, 2}}, []Segment{{0, 1}, {1, 2}, {2, 0}})
	c, err := Trace(m, 0)
	if err != nil {
		t.Fatal(err)
	}
	expectPoints(t, c, [][2]float64{{0, 0}, {2, 0}, {1, 2}, {0, 0}})
	if c.Status != Closed {
		t.Fatalf("unexpected status: %s", c.Status)
	}
	if area := c.Area(); area != 2 {
		t.Fatalf("unexpected area: %f", area)
	}
	checkContour(t, m, c)
}

func TestTraceSquareDiagonals(t *testing.T) {
	m := mustMesh(
		t,
		[][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
		[]Segment{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}, {1, 3}},
	)
	c, err := Trace(m, 0)
	if err != nil {
		t.Fatal(err)
	}
	expectPoints(t, c, [][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}})
	if n := c.NumCrossings(); n != 0 {
		t.Fatalf("expected no crossings but got %d", n)
	}
	for i, a := range c.Anchors {
		if _, ok := a.(VertexAnchor); !ok {
			t.Fatalf("point %d has anchor %T", i, a)
		}
	}
	checkContour(t, m, c)
}

func TestTraceBowTie(t *testing.T) {
	m := bowTieMesh(t)
	c, err := Trace(m, 0)
	if err != nil {
		t.Fatal(err)
	}
	expectPoints(t, c, [][2]float64{
		{0, 0}, {2, 2}, {4, 0}, {4, 4}, {2, 2}, {0, 4}, {0, 0},
	})

	// Every vertex is on the outline, so each crossing adds a point.
	if n := c.NumCrossings(); n != 2 {
		t.Fatalf("expected 2 crossings but got %d", n)
	}
	if c.NumPoints()-1 != m.NumVertices()+c.NumCrossings() {
		t.Fatalf("unexpected number of points: %d", c.NumPoints())
	}

	expectedAnchor := CrossingAnchor{Left: 2, Right: 3, Along: Segment{0, 1}}
	if c.Anchors[1] != Anchor(expectedAnchor) {
		t.Fatalf("expected anchor %v but got %v", expectedAnchor, c.Anchors[1])
	}
	expectedAnchor = CrossingAnchor{Left: 3, Right: 2, Along: Segment{1, 0}}
	if c.Anchors[4] != Anchor(expectedAnchor) {
		t.Fatalf("expected anchor %v but got %v", expectedAnchor, c.Anchors[4])
	}
	checkContour(t, m, c)
}

func TestTraceNotch(t *testing.T) {
	// An L shape with two interior edges that cross each other inside
	// the notch.
	m := notchMesh(t)
	c, err := Trace(m, 0)
	if err != nil {
		t.Fatal(err)
	}
	expectPoints(t, c, [][2]float64{
		{0, 0}, {4, 0}, {4, 2}, {2.5, 2.5}, {2, 4}, {0, 4}, {0, 0},
	})

	crossing, ok := c.Anchors[3].(CrossingAnchor)
	if !ok {
		t.Fatalf("expected crossing anchor but got %T", c.Anchors[3])
	}
	if crossing.Crossed() != (Segment{4, 7}) || !crossing.Along.Equivalent(Segment{2, 6}) {
		t.Fatalf("unexpected crossing: %v", crossing)
	}

	visited := map[int]bool{}
	for _, a := range c.Anchors {
		if v, ok := a.(VertexAnchor); ok {
			visited[v.Index] = true
		}
	}
	if c.NumPoints()-1 != len(visited)+c.NumCrossings() {
		t.Fatalf("unexpected number of points: %d", c.NumPoints())
	}
	checkContour(t, m, c)
}

func TestTraceJunction(t *testing.T) {
	// Vertex 1 sits in the middle of segment 2-3, and its dangling edge
	// to vertex 5 sticks out further than that segment.
	m := mustMesh(
		t,
		[][2]float64{{0, 0}, {2, 0}, {3, -1}, {1, 1}, {2, -3}, {3, -2.5}},
		[]Segment{{0, 1}, {2, 3}, {1, 4}, {4, 0}, {3, 0}, {1, 5}},
	)
	c, err := Trace(m, 0)
	if err != nil {
		t.Fatal(err)
	}
	expectPoints(t, c, [][2]float64{
		{0, 0}, {2, -3}, {2, 0}, {3, -2.5}, {2, 0}, {3, -1}, {1, 1}, {0, 0},
	})
	for i, idx := range []int{0, 4, 1, 5, 1, 2, 3, 0} {
		if c.Anchors[i] != Anchor(VertexAnchor{Index: idx}) {
			t.Fatalf("point %d: expected vertex %d but got %v", i, idx, c.Anchors[i])
		}
	}
	if area := c.Area(); area != 4 {
		t.Fatalf("unexpected area: %f", area)
	}
	checkContour(t, m, c)
}

func TestTraceThroughVertex(t *testing.T) {
	// The first step runs exactly through vertex 2, whose only edge
	// points outward.
	m := mustMesh(
		t,
		[][2]float64{{0, 0}, {4, 4}, {2, 2}, {3, 0}},
		[]Segment{{0, 1}, {2, 3}},
	)
	c, err := Trace(m, 0)
	if err != nil {
		t.Fatal(err)
	}
	expectPoints(t, c, [][2]float64{{0, 0}, {2, 2}, {3, 0}, {2, 2}, {4, 4}, {0, 0}})
	if n := c.NumCrossings(); n != 0 {
		t.Fatalf("expected no crossings but got %d", n)
	}
	if c.Anchors[1] != Anchor(VertexAnchor{Index: 2}) {
		t.Fatalf("unexpected anchor: %v", c.Anchors[1])
	}
	checkContour(t, m, c)
}

func TestTraceProjectedSphere(t *testing.T) {
	sphere := model3d.NewMeshIcosphere(model3d.Origin, 1, 3)
	m := NewSegmentMeshTriangles(sphere.TriangleSlice(), ProjectYZ)
	m.SnapRelative(DefaultSnapFraction)
	m = m.Deduplicate()
	c, err := Trace(m, 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.Status != Closed {
		t.Fatalf("contour did not close after %d points", c.NumPoints())
	}
	checkContour(t, m, c)
	if area := c.Area(); area < 2 || area > math.Pi {
		t.Fatalf("unexpected area: %f", area)
	}
}

func TestTraceEmpty(t *testing.T) {
	_, err := Trace(&SegmentMesh{}, 0)
	if !errors.Is(err, ErrNoContour) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTraceIsolatedStart(t *testing.T) {
	m := mustMesh(t, [][2]float64{{0, 0}, {1, 0}, {2, 1}}, []Segment{{1, 2}, {0, 0}})
	_, err := Trace(m, 0)
	if !errors.Is(err, ErrNoContour) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTraceDanglingEdge(t *testing.T) {
	m := mustMesh(t, [][2]float64{{0, 0}, {2, 1}}, []Segment{{0, 1}})
	c, err := Trace(m, 0)
	if err != nil {
		t.Fatal(err)
	}
	expectPoints(t, c, [][2]float64{{0, 0}, {2, 1}, {0, 0}})
}

func TestTraceTruncated(t *testing.T) {
	m := mustMesh(
		t,
		[][2]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
		[]Segment{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	)
	for _, maxSteps := range []int{1, 2, 3, 4} {
		tracer := &Tracer{MaxSteps: maxSteps}
		c, err := tracer.Trace(m)
		if err != nil {
			t.Fatal(err)
		}
		if c.Status != Truncated {
			t.Fatalf("max steps %d: expected truncated status", maxSteps)
		}
		if c.NumPoints() != maxSteps {
			t.Fatalf("max steps %d: got %d points", maxSteps, c.NumPoints())
		}
		checkContour(t, m, c)
	}
	c, err := Trace(m, 5)
	if err != nil {
		t.Fatal(err)
	}
	if c.Status != Closed || c.NumPoints() != 5 {
		t.Fatalf("unexpected result: %v", c.Points)
	}
}

func TestTraceRandomTriangles(t *testing.T) {
	rng := rand.New(rand.NewSource(1337))
	for trial := 0; trial < 50; trial++ {
		var tris []*model3d.Triangle
		for i := 0; i < 2+trial%6; i++ {
			tri := &model3d.Triangle{}
			for j := range tri {
				tri[j] = model3d.XYZ(rng.Float64(), rng.Float64(), rng.Float64())
			}
			tris = append(tris, tri)
		}
		m := NewSegmentMeshTriangles(tris, ProjectXY).Deduplicate()
		tracer := &Tracer{MaxSteps: 1000}
		c, err := tracer.Trace(m)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		if c.Status != Closed {
			t.Fatalf("trial %d: contour did not close", trial)
		}
		checkContour(t, m, c)
		if c.Area() <= 0 {
			t.Fatalf("trial %d: expected counter-clockwise contour", trial)
		}

		start, _ := m.Leftmost()
		if c.Points[0] != m.Vertices[start] {
			t.Fatalf("trial %d: contour did not start at leftmost vertex", trial)
		}
	}
}

func TestContourCheck(t *testing.T) {
	m := bowTieMesh(t)

	c := &Contour{
		Points:  []Point{model2d.XY(0, 0), model2d.XY(2, 2)},
		Anchors: []Anchor{
			VertexAnchor{Index: 0},
			CrossingAnchor{Left: 2, Right: 3, Along: Segment{0, 1}},
		},
		Status: Truncated,
	}
	if err := c.Check(m, 1e-8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Walking straight through the crossing is invalid.
	c = &Contour{
		Points:  []Point{model2d.XY(0, 0), model2d.XY(4, 4)},
		Anchors: []Anchor{VertexAnchor{Index: 0}, VertexAnchor{Index: 1}},
		Status:  Truncated,
	}
	if err := c.Check(m, 1e-8); err == nil {
		t.Fatal("expected crossing error")
	}

	c.Status = Closed
	if err := c.Check(m, 1e-8); err == nil {
		t.Fatal("expected status error")
	}

	c = &Contour{
		Points:  []Point{model2d.XY(0, 0), model2d.XY(1, 1)},
		Anchors: []Anchor{VertexAnchor{Index: 0}, CrossingAnchor{Left: 2, Right: 3}},
		Status:  Truncated,
	}
	if err := c.Check(m, 1e-8); err == nil {
		t.Fatal("expected error for point off of the crossed segment")
	}

	// Vertex 3 has the same x as the leftmost vertex but a different y.
	c = &Contour{
		Points:  []Point{model2d.XY(0, 4)},
		Anchors: []Anchor{VertexAnchor{Index: 3}},
		Status:  Truncated,
	}
	if err := c.Check(m, 1e-8); err == nil {
		t.Fatal("expected error for wrong starting vertex")
	}
}

func TestContourMeasurements(t *testing.T) {
	c := &Contour{
		Points: []Point{
			model2d.XY(0, 0),
			model2d.XY(3, 0),
			model2d.XY(3, 4),
			model2d.XY(0, 0),
		},
	}
	if p := c.Perimeter(); p != 12 {
		t.Errorf("unexpected perimeter: %f", p)
	}
	if a := c.Area(); math.Abs(a-6) > 1e-8 {
		t.Errorf("unexpected area: %f", a)
	}
}

func mustMesh(t *testing.T, coords [][2]float64, segments []Segment) *SegmentMesh {
	m, err := NewSegmentMeshCoords(coords, segments)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func expectPoints(t *testing.T, c *Contour, expected [][2]float64) {
	if len(c.Points) != len(expected) {
		t.Fatalf("expected %d points but got %v", len(expected), c.Points)
	}
	for i, p := range c.Points {
		if p.Dist(model2d.XY(expected[i][0], expected[i][1])) > 1e-8 {
			t.Fatalf("point %d: expected %v but got %v", i, expected[i], p)
		}
	}
	if len(c.Anchors) != len(c.Points) {
		t.Fatalf("got %d anchors for %d points", len(c.Anchors), len(c.Points))
	}
}

func checkContour(t *testing.T, m *SegmentMesh, c *Contour) {
	if err := c.Check(m, 1e-8); err != nil {
		t.Fatal(err)
	}
	if c.Status == Closed {
		if c.Points[len(c.Points)-1] != c.Points[0] {
			t.Fatal("closed contour does not end at its start")
		}
	}
}
