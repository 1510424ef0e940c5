package outline

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// A Segment is an undirected edge between two vertex indices of a
// SegmentMesh.
//
// A segment with equal endpoints is a self-loop. Self-loops may appear as
// placeholders in a mesh, but they are never treated as edges.
type Segment [2]int

// IsLoop checks if both endpoints of s are the same vertex.
func (s Segment) IsLoop() bool {
	return s[0] == s[1]
}

// Touches checks if either endpoint of s is the vertex index.
func (s Segment) Touches(index int) bool {
	return s[0] == index || s[1] == index
}

// Other returns the endpoint of s opposite to index.
//
// The result is undefined if s does not touch index.
func (s Segment) Other(index int) int {
	if s[0] == index {
		return s[1]
	}
	return s[0]
}

// Equivalent checks if s and s1 connect the same unordered pair of vertices.
func (s Segment) Equivalent(s1 Segment) bool {
	return s == s1 || (s[0] == s1[1] && s[1] == s1[0])
}

// normalize orders the endpoints so that equivalent segments compare equal.
func (s Segment) normalize() Segment {
	if s[0] > s[1] {
		return Segment{s[1], s[0]}
	}
	return s
}

// A SegmentMesh is a planar wireframe made of vertices and segments which
// refer to vertices by index.
//
// Vertex indices are stable: the only operation that renumbers vertices is
// Deduplicate(), which produces a new mesh.
type SegmentMesh struct {
	Vertices []Point
	Segments []Segment
}

// NewSegmentMesh creates a mesh and checks that every segment refers to
// existing vertices.
func NewSegmentMesh(vertices []Point, segments []Segment) (*SegmentMesh, error) {
	m := &SegmentMesh{Vertices: vertices, Segments: segments}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewSegmentMeshCoords creates a mesh from raw coordinate pairs of any float
// precision.
func NewSegmentMeshCoords[F constraints.Float](coords [][2]F,
	segments []Segment) (*SegmentMesh, error) {
	vertices := make([]Point, len(coords))
	for i, c := range coords {
		vertices[i] = model2d.XY(float64(c[0]), float64(c[1]))
	}
	return NewSegmentMesh(vertices, append([]Segment{}, segments...))
}

// Validate checks that every segment index is in range.
func (m *SegmentMesh) Validate() error {
	for i, seg := range m.Segments {
		for _, idx := range seg {
			if idx < 0 || idx >= len(m.Vertices) {
				return errors.Errorf(
					"segment %d references vertex %d of %d",
					i, idx, len(m.Vertices),
				)
			}
		}
	}
	return nil
}

func (m *SegmentMesh) NumVertices() int {
	return len(m.Vertices)
}

func (m *SegmentMesh) NumSegments() int {
	return len(m.Segments)
}

// Clone creates a deep copy of the mesh.
func (m *SegmentMesh) Clone() *SegmentMesh {
	return &SegmentMesh{
		Vertices: slices.Clone(m.Vertices),
		Segments: slices.Clone(m.Segments),
	}
}

// Vertex gets the coordinate of a vertex index.
func (m *SegmentMesh) Vertex(index int) Point {
	return m.Vertices[index]
}

// SegmentPoints resolves the endpoints of a segment to coordinates.
func (m *SegmentMesh) SegmentPoints(s Segment) (Point, Point) {
	return m.Vertices[s[0]], m.Vertices[s[1]]
}

// Adjacent finds every vertex connected to index by a single segment.
//
// Self-loops are skipped. The result follows the order of the segments, and
// contains repeats if the mesh has equivalent segments.
func (m *SegmentMesh) Adjacent(index int) []int {
	var res []int
	for _, seg := range m.Segments {
		if seg.IsLoop() {
			continue
		}
		if seg[0] == index {
			res = append(res, seg[1])
		} else if seg[1] == index {
			res = append(res, seg[0])
		}
	}
	return res
}

// Bounds computes the componentwise minimum and maximum of the vertices.
//
// If the mesh has no vertices, ok is false.
func (m *SegmentMesh) Bounds() (min, max Point, ok bool) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max, true
}

// Leftmost finds the vertex with strictly minimal x coordinate, preferring
// the lowest index on ties.
func (m *SegmentMesh) Leftmost() (index int, ok bool) {
	if len(m.Vertices) == 0 {
		return 0, false
	}
	for i, v := range m.Vertices {
		if v.X < m.Vertices[index].X {
			index = i
		}
	}
	return index, true
}

// Deduplicate creates a new mesh where vertices with exactly equal
// coordinates are merged and equivalent segments are collapsed.
//
// The first occurrence of a coordinate keeps its place in the vertex order,
// and segments keep the order in which they are first encountered.
func (m *SegmentMesh) Deduplicate() *SegmentMesh {
	res := &SegmentMesh{}
	mapping := make([]int, len(m.Vertices))
	firstIndex := map[Point]int{}
	for i, v := range m.Vertices {
		if idx, ok := firstIndex[v]; ok {
			mapping[i] = idx
		} else {
			idx = len(res.Vertices)
			firstIndex[v] = idx
			mapping[i] = idx
			res.Vertices = append(res.Vertices, v)
		}
	}

	seen := map[Segment]bool{}
	for _, seg := range m.Segments {
		newSeg := Segment{mapping[seg[0]], mapping[seg[1]]}
		key := newSeg.normalize()
		if !seen[key] {
			seen[key] = true
			res.Segments = append(res.Segments, newSeg)
		}
	}
	return res
}

// Translate adds v to every vertex.
func (m *SegmentMesh) Translate(v Point) {
	for i, c := range m.Vertices {
		m.Vertices[i] = c.Add(v)
	}
}

// Scale multiplies every vertex by s.
func (m *SegmentMesh) Scale(s float64) {
	for i, c := range m.Vertices {
		m.Vertices[i] = c.Scale(s)
	}
}

// Mul multiplies every vertex componentwise by v.
func (m *SegmentMesh) Mul(v Point) {
	for i, c := range m.Vertices {
		m.Vertices[i] = c.Mul(v)
	}
}

// DefaultSnapFraction is the grid step, relative to the size of a mesh, that
// SnapRelative is typically used with.
const DefaultSnapFraction = 1e-9

// SnapRelative snaps the mesh to a grid whose step is frac times the longer
// side of its bounding box, and returns the step.
//
// Meshes with zero extent are left alone, and 0 is returned.
func (m *SegmentMesh) SnapRelative(frac float64) float64 {
	min, max, ok := m.Bounds()
	if !ok {
		return 0
	}
	size := max.Sub(min)
	step := frac * math.Max(size.X, size.Y)
	if step <= 0 {
		return 0
	}
	m.Snap(step)
	return step
}

// Snap rounds every vertex coordinate to the nearest multiple of step.
//
// Snapping can make nearly coincident vertices exactly equal, so that
// Deduplicate() merges them afterwards.
func (m *SegmentMesh) Snap(step float64) {
	if step <= 0 {
		panic("snap step must be positive")
	}
	for i, c := range m.Vertices {
		m.Vertices[i] = model2d.XY(
			math.Round(c.X/step)*step,
			math.Round(c.Y/step)*step,
		)
	}
}
