package outline

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
)

const (
	anchorKindVertex   = 0
	anchorKindCrossing = 1
)

// readChunkSize bounds how many values are allocated ahead of the data that
// backs them, so that a corrupted count fails on a short read.
const readChunkSize = 1 << 16

// WriteSegmentMesh serializes m in a 64-bit precision binary format.
func WriteSegmentMesh(w io.Writer, m *SegmentMesh) error {
	if err := writeSegmentMesh(w, m); err != nil {
		return errors.Wrap(err, "write segment mesh")
	}
	return nil
}

func writeSegmentMesh(w io.Writer, m *SegmentMesh) error {
	header := []uint32{uint32(len(m.Vertices)), uint32(len(m.Segments))}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	coords := make([]float64, 0, len(m.Vertices)*2)
	for _, v := range m.Vertices {
		coords = append(coords, v.X, v.Y)
	}
	if err := binary.Write(w, binary.LittleEndian, coords); err != nil {
		return err
	}
	indices := make([]uint32, 0, len(m.Segments)*2)
	for _, s := range m.Segments {
		indices = append(indices, uint32(s[0]), uint32(s[1]))
	}
	return binary.Write(w, binary.LittleEndian, indices)
}

// ReadSegmentMesh reads the output written by WriteSegmentMesh.
//
// The resulting mesh is validated, so corrupted indices produce an error.
func ReadSegmentMesh(r io.Reader) (*SegmentMesh, error) {
	res, err := readSegmentMesh(r)
	if err != nil {
		return nil, errors.Wrap(err, "read segment mesh")
	}
	return res, nil
}

func readSegmentMesh(r io.Reader) (*SegmentMesh, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	coords, err := readSlice[float64](r, int(header[0])*2)
	if err != nil {
		return nil, err
	}
	indices, err := readSlice[uint32](r, int(header[1])*2)
	if err != nil {
		return nil, err
	}

	vertices := make([]Point, header[0])
	for i := range vertices {
		vertices[i] = model2d.XY(coords[i*2], coords[i*2+1])
	}
	segments := make([]Segment, header[1])
	for i := range segments {
		segments[i] = Segment{int(indices[i*2]), int(indices[i*2+1])}
	}
	return NewSegmentMesh(vertices, segments)
}

func readSlice[T float64 | uint32](r io.Reader, n int) ([]T, error) {
	res := make([]T, 0, essentials.MinInt(n, readChunkSize))
	for len(res) < n {
		chunk := make([]T, essentials.MinInt(n-len(res), readChunkSize))
		if err := binary.Read(r, binary.LittleEndian, chunk); err != nil {
			return nil, err
		}
		res = append(res, chunk...)
	}
	return res, nil
}

// WriteContour serializes c in a 64-bit precision binary format.
func WriteContour(w io.Writer, c *Contour) error {
	if err := writeContour(w, c); err != nil {
		return errors.Wrap(err, "write contour")
	}
	return nil
}

func writeContour(w io.Writer, c *Contour) error {
	if len(c.Points) != len(c.Anchors) {
		return errors.New("points and anchors have different lengths")
	}
	header := []uint32{uint32(c.Status), uint32(len(c.Points))}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	for i, p := range c.Points {
		if err := binary.Write(w, binary.LittleEndian, []float64{p.X, p.Y}); err != nil {
			return err
		}
		var record [5]uint32
		switch a := c.Anchors[i].(type) {
		case VertexAnchor:
			record = [5]uint32{anchorKindVertex, uint32(a.Index)}
		case CrossingAnchor:
			record = [5]uint32{
				anchorKindCrossing,
				uint32(a.Left),
				uint32(a.Right),
				uint32(a.Along[0]),
				uint32(a.Along[1]),
			}
		default:
			return errors.Errorf("unknown anchor type: %T", a)
		}
		if err := binary.Write(w, binary.LittleEndian, record); err != nil {
			return err
		}
	}
	return nil
}

// ReadContour reads the output written by WriteContour.
func ReadContour(r io.Reader) (*Contour, error) {
	res, err := readContour(r)
	if err != nil {
		return nil, errors.Wrap(err, "read contour")
	}
	return res, nil
}

func readContour(r io.Reader) (*Contour, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	status := Status(header[0])
	if status != Closed && status != Truncated {
		return nil, errors.Errorf("unknown status: %d", header[0])
	}
	n := int(header[1])
	res := &Contour{
		Points:  make([]Point, 0, essentials.MinInt(n, readChunkSize)),
		Anchors: make([]Anchor, 0, essentials.MinInt(n, readChunkSize)),
		Status:  status,
	}
	for i := 0; i < n; i++ {
		var coords [2]float64
		if err := binary.Read(r, binary.LittleEndian, &coords); err != nil {
			return nil, err
		}
		res.Points = append(res.Points, model2d.XY(coords[0], coords[1]))

		var record [5]uint32
		if err := binary.Read(r, binary.LittleEndian, &record); err != nil {
			return nil, err
		}
		switch record[0] {
		case anchorKindVertex:
			res.Anchors = append(res.Anchors, VertexAnchor{Index: int(record[1])})
		case anchorKindCrossing:
			res.Anchors = append(res.Anchors, CrossingAnchor{
				Left:  int(record[1]),
				Right: int(record[2]),
				Along: Segment{int(record[3]), int(record[4])},
			})
		default:
			return nil, errors.Errorf("unknown anchor kind: %d", record[0])
		}
	}
	return res, nil
}
