// Package pointcloud defines an immutable point cloud and the footprint
// queries used to carve it into patches.
//
// A cloud is a fixed set of 3D positions, optionally carrying a per-point
// feature vector of uniform dimension. Clouds are addressed by point index;
// every patching strategy in this module resolves to sets of these indices.
package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrEmptyCloud is returned by operations that are undefined over zero points.
var ErrEmptyCloud = errors.New("point cloud has no points")

// MetaData is the extent of a point cloud along each axis.
type MetaData struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// NewMetaData returns MetaData ready to be merged into.
func NewMetaData() MetaData {
	return MetaData{
		MinX: math.MaxFloat64,
		MinY: math.MaxFloat64,
		MinZ: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MaxY: -math.MaxFloat64,
		MaxZ: -math.MaxFloat64,
	}
}

// Merge widens the extent to cover v.
func (meta *MetaData) Merge(v r3.Vector) {
	if v.X > meta.MaxX {
		meta.MaxX = v.X
	}
	if v.Y > meta.MaxY {
		meta.MaxY = v.Y
	}
	if v.Z > meta.MaxZ {
		meta.MaxZ = v.Z
	}

	if v.X < meta.MinX {
		meta.MinX = v.X
	}
	if v.Y < meta.MinY {
		meta.MinY = v.Y
	}
	if v.Z < meta.MinZ {
		meta.MinZ = v.Z
	}
}

// PointCloud is an immutable, index-addressed collection of points. The
// backing slices are borrowed read-only and must not be mutated by the
// caller while any patcher references the cloud.
type PointCloud struct {
	positions []r3.Vector
	features  *mat.Dense
	meta      MetaData
}

// New wraps positions into a PointCloud with no features.
func New(positions []r3.Vector) *PointCloud {
	meta := NewMetaData()
	for _, p := range positions {
		meta.Merge(p)
	}
	return &PointCloud{positions: positions, meta: meta}
}

// NewWithFeatures wraps positions plus an N x F feature matrix whose row
// count must match the point count.
func NewWithFeatures(positions []r3.Vector, features *mat.Dense) (*PointCloud, error) {
	if features != nil {
		if rows, _ := features.Dims(); rows != len(positions) {
			return nil, errors.Errorf("feature rows (%d) do not match point count (%d)", rows, len(positions))
		}
	}
	cloud := New(positions)
	cloud.features = features
	return cloud, nil
}

// Size returns the number of points in the cloud.
func (cloud *PointCloud) Size() int {
	return len(cloud.positions)
}

// At returns the position of point i.
func (cloud *PointCloud) At(i int) r3.Vector {
	return cloud.positions[i]
}

// MetaData returns the cloud's axis extents. Meaningless on an empty cloud;
// use BoundingBox for checked access.
func (cloud *PointCloud) MetaData() MetaData {
	return cloud.meta
}

// HasFeatures returns whether the cloud carries per-point features.
func (cloud *PointCloud) HasFeatures() bool {
	return cloud.features != nil
}

// FeatureDim returns the feature vector dimension, 0 when absent.
func (cloud *PointCloud) FeatureDim() int {
	if cloud.features == nil {
		return 0
	}
	_, cols := cloud.features.Dims()
	return cols
}

// FeaturesAt returns a copy of the feature vector of point i.
func (cloud *PointCloud) FeaturesAt(i int) []float64 {
	if cloud.features == nil {
		return nil
	}
	return mat.Row(nil, i, cloud.features)
}

// Iterate calls fn for each point in index order until fn returns false.
func (cloud *PointCloud) Iterate(fn func(i int, p r3.Vector) bool) {
	for i, p := range cloud.positions {
		if !fn(i, p) {
			return
		}
	}
}
