package kdtree

import (
	"context"
	"sort"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	gokd "gonum.org/v1/gonum/spatial/kdtree"

	pc "github.com/viam-labs/patchcloud/pointcloud"
)

// basicKDTree is the reference KDTree implementation, backed by gonum's
// spatial k-d tree.
type basicKDTree struct {
	logger golog.Logger
	cloud  *pc.PointCloud
	tree   *gokd.Tree
}

// New builds a k-d tree over every point of the cloud. Construction is the
// expensive step and happens exactly once; queries afterward are sub-linear
// on average. An empty cloud cannot be indexed.
func New(ctx context.Context, cloud *pc.PointCloud, logger golog.Logger) (KDTree, error) {
	if cloud.Size() == 0 {
		return nil, errors.Wrap(pc.ErrEmptyCloud, "cannot build k-d tree")
	}
	points := make(treePoints, cloud.Size())
	for i := 0; i < cloud.Size(); i++ {
		points[i] = treePoint{pos: cloud.At(i), idx: i}
	}
	tree := gokd.New(points, false)
	logger.Debugf("built k-d tree over %d points", cloud.Size())

	return &basicKDTree{
		logger: logger,
		cloud:  cloud,
		tree:   tree,
	}, nil
}

func (kd *basicKDTree) Size() int {
	return kd.cloud.Size()
}

func (kd *basicKDTree) RadiusQuery(center r3.Vector, radius float64) []Neighbor {
	if radius < 0 {
		return []Neighbor{}
	}
	keeper := gokd.NewDistKeeper(radius * radius)
	kd.tree.NearestSet(keeper, treePoint{pos: center, idx: -1})
	return collectNeighbors(keeper.Heap)
}

func (kd *basicKDTree) KNNQuery(center r3.Vector, k int) ([]Neighbor, error) {
	if k <= 0 {
		return nil, errors.Wrapf(ErrInvalidQuery, "k must be positive, got %d", k)
	}
	if k > kd.cloud.Size() {
		return nil, errors.Wrapf(ErrInsufficientPoints,
			"requested %d neighbors from a cloud of %d points", k, kd.cloud.Size())
	}
	keeper := gokd.NewNKeeper(k)
	kd.tree.NearestSet(keeper, treePoint{pos: center, idx: -1})
	return collectNeighbors(keeper.Heap), nil
}

// collectNeighbors flattens a keeper heap into sorted query results,
// dropping any unfilled keeper slot.
func collectNeighbors(heap gokd.Heap) []Neighbor {
	neighbors := make([]Neighbor, 0, len(heap))
	for _, cd := range heap {
		pt, ok := cd.Comparable.(treePoint)
		if !ok {
			continue
		}
		neighbors = append(neighbors, Neighbor{Index: pt.idx, SquaredDist: cd.Dist})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].SquaredDist != neighbors[j].SquaredDist {
			return neighbors[i].SquaredDist < neighbors[j].SquaredDist
		}
		return neighbors[i].Index < neighbors[j].Index
	})
	return neighbors
}

// treePoint adapts one cloud point to gonum's kd-tree Comparable, carrying
// the original cloud index through tree construction.
type treePoint struct {
	pos r3.Vector
	idx int
}

func (p treePoint) Compare(c gokd.Comparable, d gokd.Dim) float64 {
	q := c.(treePoint)
	switch d {
	case 0:
		return p.pos.X - q.pos.X
	case 1:
		return p.pos.Y - q.pos.Y
	default:
		return p.pos.Z - q.pos.Z
	}
}

func (p treePoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between two points.
func (p treePoint) Distance(c gokd.Comparable) float64 {
	q := c.(treePoint)
	return p.pos.Sub(q.pos).Norm2()
}

// treePoints implements gonum's kdtree.Interface over a point slice.
type treePoints []treePoint

func (p treePoints) Index(i int) gokd.Comparable { return p[i] }

func (p treePoints) Len() int { return len(p) }

func (p treePoints) Slice(start, end int) gokd.Interface { return p[start:end] }

func (p treePoints) Pivot(d gokd.Dim) int {
	return treePlane{treePoints: p, Dim: d}.Pivot()
}

// treePlane sorts treePoints along a single dimension.
type treePlane struct {
	treePoints
	gokd.Dim
}

func (p treePlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.treePoints[i].pos.X < p.treePoints[j].pos.X
	case 1:
		return p.treePoints[i].pos.Y < p.treePoints[j].pos.Y
	default:
		return p.treePoints[i].pos.Z < p.treePoints[j].pos.Z
	}
}

func (p treePlane) Pivot() int { return gokd.Partition(p, gokd.MedianOfMedians(p)) }

func (p treePlane) Slice(start, end int) gokd.SortSlicer {
	p.treePoints = p.treePoints[start:end]
	return p
}

func (p treePlane) Swap(i, j int) {
	p.treePoints[i], p.treePoints[j] = p.treePoints[j], p.treePoints[i]
}
