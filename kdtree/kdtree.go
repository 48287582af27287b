// Package kdtree implements a k-d tree proximity index over pointclouds for
// radius and k-nearest-neighbor retrieval around arbitrary 3D centers.
package kdtree

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// ErrInsufficientPoints is returned when a query asks for more neighbors
// than the indexed cloud contains.
var ErrInsufficientPoints = errors.New("not enough points to satisfy query")

// ErrInvalidQuery is returned when query parameters are malformed, such as a
// non-positive neighbor count.
var ErrInvalidQuery = errors.New("invalid query parameters")

// Neighbor is one query result: a point index into the indexed cloud and its
// squared Euclidean distance from the query center.
type Neighbor struct {
	Index       int
	SquaredDist float64
}

// KDTree answers proximity queries over the points of a single cloud. The
// index is built once at construction and is safe for concurrent readers.
type KDTree interface {
	// Size returns the number of indexed points.
	Size() int

	// RadiusQuery returns every point within radius (inclusive) of center,
	// ordered by increasing squared distance, ties by increasing index.
	RadiusQuery(center r3.Vector, radius float64) []Neighbor

	// KNNQuery returns the k points closest to center in the same order.
	// Requests for more neighbors than indexed points fail with
	// ErrInsufficientPoints rather than truncating.
	KNNQuery(center r3.Vector, k int) ([]Neighbor, error)
}
