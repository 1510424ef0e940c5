package outline

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Load reads an object from a file using a reader function, such as
// ReadSegmentMesh or model3d.ReadSTL.
func Load[T any](path string, f func(r io.Reader) (T, error)) (T, error) {
	var zero T
	r, err := os.Open(path)
	if err != nil {
		return zero, errors.Wrap(err, "load")
	}
	defer r.Close()
	res, err := f(bufio.NewReader(r))
	if err != nil {
		return zero, errors.Wrap(err, "load "+path)
	}
	return res, nil
}

// Save writes an object to a file using a writer function, such as
// WriteContour.
func Save[T any](path string, obj T, f func(w io.Writer, obj T) error) error {
	w, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save")
	}
	defer w.Close()
	bw := bufio.NewWriter(w)
	if err := f(bw, obj); err != nil {
		return errors.Wrap(err, "save "+path)
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "save "+path)
	}
	return errors.Wrap(w.Close(), "save "+path)
}
