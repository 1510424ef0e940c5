package outline

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// A Projection flattens a 3D coordinate onto a plane.
type Projection func(c model3d.Coord3D) Point

// ProjectXY drops the z axis, viewing the model from above.
func ProjectXY(c model3d.Coord3D) Point {
	return model2d.XY(c.X, c.Y)
}

// ProjectXZ drops the y axis, viewing the model from the front.
func ProjectXZ(c model3d.Coord3D) Point {
	return model2d.XY(c.X, c.Z)
}

// ProjectYZ drops the x axis, viewing the model from the side.
func ProjectYZ(c model3d.Coord3D) Point {
	return model2d.XY(c.Y, c.Z)
}

// ParseProjection looks up a projection by the plane it projects onto, such
// as "xy" or "xz".
func ParseProjection(name string) (Projection, error) {
	switch strings.ToLower(name) {
	case "xy", "yx":
		return ProjectXY, nil
	case "xz", "zx":
		return ProjectXZ, nil
	case "yz", "zy":
		return ProjectYZ, nil
	}
	return nil, errors.Errorf("unknown projection plane: %s", name)
}

// NewSegmentMeshTriangles projects every triangle and adds its three
// vertices and three edges to a new mesh.
//
// Vertices shared between triangles are repeated; use Deduplicate() to
// connect the resulting wireframe.
func NewSegmentMeshTriangles(tris []*model3d.Triangle, proj Projection) *SegmentMesh {
	res := &SegmentMesh{
		Vertices: make([]Point, 0, len(tris)*3),
		Segments: make([]Segment, 0, len(tris)*3),
	}
	for _, t := range tris {
		i := len(res.Vertices)
		for _, c := range t {
			res.Vertices = append(res.Vertices, proj(c))
		}
		res.Segments = append(
			res.Segments,
			Segment{i, i + 1},
			Segment{i + 1, i + 2},
			Segment{i + 2, i},
		)
	}
	return res
}

// FilterDegenerate removes triangles with zero area.
//
// Returns the kept triangles and the number of removed ones.
func FilterDegenerate(tris []*model3d.Triangle) ([]*model3d.Triangle, int) {
	kept := make([]*model3d.Triangle, 0, len(tris))
	for _, t := range tris {
		if t.Area() > 0 {
			kept = append(kept, t)
		}
	}
	return kept, len(tris) - len(kept)
}
