package outline

// An Anchor records how a contour point relates to the mesh.
//
// It is either a VertexAnchor or a CrossingAnchor.
type Anchor interface {
	// excludes checks if a segment must be ignored when searching for
	// crossings along a step that departs from the anchor.
	excludes(s Segment) bool

	// departure gets the vertex index the walk leaves behind when it
	// steps away from the anchor.
	departure() int
}

// A VertexAnchor is a contour point located exactly at a mesh vertex.
type VertexAnchor struct {
	Index int
}

func (v VertexAnchor) excludes(s Segment) bool {
	return s.Touches(v.Index)
}

func (v VertexAnchor) departure() int {
	return v.Index
}

// A CrossingAnchor is a contour point where the walk cut across the segment
// between Left and Right.
//
// Left is the outward endpoint that the walk heads to next, and Right is the
// endpoint left behind. Along is the segment the walk was following when it
// hit the crossing, ordered from the departed vertex to the abandoned target.
type CrossingAnchor struct {
	Left  int
	Right int
	Along Segment
}

func (c CrossingAnchor) excludes(s Segment) bool {
	return s.Touches(c.Right) || s.Equivalent(c.Along)
}

func (c CrossingAnchor) departure() int {
	return c.Right
}

// Crossed gets the segment that the walk cut across.
func (c CrossingAnchor) Crossed() Segment {
	return Segment{c.Left, c.Right}
}
