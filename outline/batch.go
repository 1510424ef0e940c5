package outline

import (
	"runtime"

	"github.com/unixpickle/essentials"
)

// TraceAll traces a batch of independent meshes in parallel.
//
// The results are parallel to meshes. For each mesh, exactly one of the
// contour or the error is non-nil.
//
// If concurrency is 0, GOMAXPROCS is used.
func TraceAll(meshes []*SegmentMesh, t *Tracer, concurrency int) ([]*Contour, []error) {
	if concurrency == 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	contours := make([]*Contour, len(meshes))
	errs := make([]error, len(meshes))
	essentials.ConcurrentMap(concurrency, len(meshes), func(i int) {
		contours[i], errs[i] = t.Trace(meshes[i])
	})
	return contours, errs
}
