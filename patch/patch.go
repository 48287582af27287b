// Package patch partitions point clouds into overlapping, bounded subsets of
// point indices. Two strategies are provided: a regular 2D grid over the
// cloud's footprint (Grid) and neighborhood balls around individual points
// (Ball). An Aggregator composes any number of patch sources into one
// linearly indexed sequence.
package patch

import (
	"github.com/pkg/errors"

	pc "github.com/viam-labs/patchcloud/pointcloud"
)

// ErrInvalidConfig is returned when construction parameters cannot yield a
// usable patcher.
var ErrInvalidConfig = errors.New("invalid patcher configuration")

// ErrIndexOutOfRange is returned when a patch index falls outside the valid
// range of its source.
var ErrIndexOutOfRange = errors.New("patch index out of range")

// Patch is one bounded subset of a cloud, identified by point indices into
// the owning cloud. Indices is the full (outer) set. For sources that
// distinguish a core region, Inner holds the indices owned uniquely by this
// patch; it is nil when the distinction does not apply.
type Patch struct {
	Cloud   *pc.PointCloud
	Indices []int
	Inner   []int
}

// Source is anything that produces a fixed sequence of patches. Grid, Ball,
// and Aggregator all satisfy it, so consumers can iterate patches without
// knowing which strategy produced them.
type Source interface {
	// Len returns the number of patches.
	Len() int

	// At returns patch idx. Indices outside [0, Len()) fail with
	// ErrIndexOutOfRange.
	At(idx int) (Patch, error)
}
