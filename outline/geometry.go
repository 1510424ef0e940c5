package outline

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
)

// A Point is a 2D coordinate in a segment mesh or a contour.
type Point = model2d.Coord

// det computes the 2D cross product of a and b.
//
// It is positive when b points to the left of a.
func det(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// leftAngle computes the counter-clockwise angle swept when turning from
// direction a to direction b.
//
// The result is in [0, 2*pi]. Rounding may produce exactly 2*pi for a
// direction just clockwise of a; this is never folded back to 0.
func leftAngle(a, b Point) float64 {
	angle := math.Atan2(det(a, b), a.Dot(b))
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// segmentIntersection solves o + r*d = a + s*e for the parameters r and s of
// two line segments.
//
// Returns false if the segments are parallel (including degenerate segments).
func segmentIntersection(o, d, a, e Point) (r, s float64, ok bool) {
	den := det(d, e)
	if den == 0 {
		return 0, 0, false
	}
	w := a.Sub(o)
	r = det(w, e) / den
	s = det(w, d) / den
	return r, s, true
}

// properlyCrosses checks if the open segments p1-p2 and q1-q2 cross at a
// point interior to both, with the endpoints of each strictly on opposite
// sides of the other.
func properlyCrosses(p1, p2, q1, q2 Point) bool {
	d := p2.Sub(p1)
	e := q2.Sub(q1)
	s1 := det(d, q1.Sub(p1))
	s2 := det(d, q2.Sub(p1))
	s3 := det(e, p1.Sub(q1))
	s4 := det(e, p2.Sub(q1))
	return ((s1 < 0 && s2 > 0) || (s1 > 0 && s2 < 0)) &&
		((s3 < 0 && s4 > 0) || (s3 > 0 && s4 < 0))
}
