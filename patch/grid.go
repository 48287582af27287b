package patch

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	pc "github.com/viam-labs/patchcloud/pointcloud"
)

// GridConfig sets the lattice granularity of a Grid. Block dimensions and
// the context margin are in the cloud's coordinate units.
type GridConfig struct {
	// BlockWidth is the outer block extent along x.
	BlockWidth float64
	// BlockHeight is the outer block extent along y.
	BlockHeight float64
	// ContextMargin is the overlap width shared with neighboring blocks. A
	// block's inner (core-ownership) bounds are its outer bounds shrunk by
	// this margin on every side.
	ContextMargin float64
}

func (cfg GridConfig) validate() error {
	if cfg.BlockWidth <= 0 || cfg.BlockHeight <= 0 || cfg.ContextMargin <= 0 {
		return errors.Wrapf(ErrInvalidConfig,
			"block dimensions (%.2f x %.2f) and context margin (%.2f) must be positive",
			cfg.BlockWidth, cfg.BlockHeight, cfg.ContextMargin)
	}
	if cfg.ContextMargin >= cfg.BlockWidth || cfg.ContextMargin >= cfg.BlockHeight {
		return errors.Wrapf(ErrInvalidConfig,
			"context margin (%.2f) must be smaller than both block dimensions (%.2f x %.2f)",
			cfg.ContextMargin, cfg.BlockWidth, cfg.BlockHeight)
	}
	return nil
}

// Grid partitions a cloud's 2D footprint into a row-major lattice of
// overlapping blocks. Successive block origins are one stride apart, where
// stride is the block dimension minus the context margin, so adjacent outer
// blocks overlap by exactly the margin.
type Grid struct {
	cloud      *pc.PointCloud
	cfg        GridConfig
	logger     golog.Logger
	minPoint   r3.Vector
	maxPoint   r3.Vector
	strideX    float64
	strideY    float64
	numBlocksX int
	numBlocksY int
}

// NewGrid builds the lattice over cloud. The cloud's bounding box is
// computed once here; an empty cloud has none and fails with ErrEmptyCloud.
func NewGrid(cloud *pc.PointCloud, cfg GridConfig, logger golog.Logger) (*Grid, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	minPoint, maxPoint, err := cloud.BoundingBox()
	if err != nil {
		return nil, err
	}

	strideX := cfg.BlockWidth - cfg.ContextMargin
	strideY := cfg.BlockHeight - cfg.ContextMargin
	cloudSizeX := maxPoint.X - minPoint.X
	cloudSizeY := maxPoint.Y - minPoint.Y

	// a zero-extent axis still yields one block along that axis
	numBlocksX := int(math.Ceil(cloudSizeX / strideX))
	if numBlocksX < 1 {
		numBlocksX = 1
	}
	numBlocksY := int(math.Ceil(cloudSizeY / strideY))
	if numBlocksY < 1 {
		numBlocksY = 1
	}

	logger.Debugf("grid of %d x %d blocks over %.2f x %.2f footprint",
		numBlocksX, numBlocksY, cloudSizeX, cloudSizeY)

	return &Grid{
		cloud:      cloud,
		cfg:        cfg,
		logger:     logger,
		minPoint:   minPoint,
		maxPoint:   maxPoint,
		strideX:    strideX,
		strideY:    strideY,
		numBlocksX: numBlocksX,
		numBlocksY: numBlocksY,
	}, nil
}

// Len returns the total number of blocks in the lattice.
func (g *Grid) Len() int {
	return g.numBlocksX * g.numBlocksY
}

// NumBlocks returns the lattice dimensions as (columns, rows).
func (g *Grid) NumBlocks() (int, int) {
	return g.numBlocksX, g.numBlocksY
}

// BoundsAt returns the outer footprint bounds of block idx. Block indices
// are row-major: row = idx / numBlocksX, col = idx % numBlocksX. The upper
// bounds are clamped to the cloud extent, so boundary blocks may be narrower
// than the configured block dimensions.
func (g *Grid) BoundsAt(idx int) (r2.Rect, error) {
	if idx < 0 || idx >= g.Len() {
		return r2.Rect{}, errors.Wrapf(ErrIndexOutOfRange, "block %d of %d", idx, g.Len())
	}
	row := idx / g.numBlocksX
	col := idx % g.numBlocksX

	blockMinX := g.minPoint.X + float64(col)*g.strideX
	blockMinY := g.minPoint.Y + float64(row)*g.strideY
	blockMaxX := math.Min(blockMinX+g.cfg.BlockWidth, g.maxPoint.X)
	blockMaxY := math.Min(blockMinY+g.cfg.BlockHeight, g.maxPoint.Y)

	return pc.NewBounds(blockMinX, blockMinY, blockMaxX, blockMaxY), nil
}

// InnerBoundsAt returns the outer bounds of block idx shrunk by the context
// margin on every side. For small clamped boundary blocks the shrink can
// invert the bounds; the result is then the empty region, whose membership
// set is empty, not an error.
func (g *Grid) InnerBoundsAt(idx int) (r2.Rect, error) {
	bounds, err := g.BoundsAt(idx)
	if err != nil {
		return r2.Rect{}, err
	}
	return bounds.ExpandedByMargin(-g.cfg.ContextMargin), nil
}

// PointsAt returns the indices of every cloud point inside the outer bounds
// of block idx, boundary inclusive. Points on a shared block edge belong to
// both blocks.
func (g *Grid) PointsAt(idx int) ([]int, error) {
	bounds, err := g.BoundsAt(idx)
	if err != nil {
		return nil, err
	}
	return pc.SelectInBounds(g.cloud, bounds), nil
}

// InnerPointsAt returns the indices of the points owned uniquely by block
// idx, those inside its inner bounds.
func (g *Grid) InnerPointsAt(idx int) ([]int, error) {
	bounds, err := g.InnerBoundsAt(idx)
	if err != nil {
		return nil, err
	}
	return pc.SelectInBounds(g.cloud, bounds), nil
}

// At returns block idx as a Patch with both the outer and inner index sets.
func (g *Grid) At(idx int) (Patch, error) {
	outer, err := g.PointsAt(idx)
	if err != nil {
		return Patch{}, err
	}
	inner, err := g.InnerPointsAt(idx)
	if err != nil {
		return Patch{}, err
	}
	return Patch{Cloud: g.cloud, Indices: outer, Inner: inner}, nil
}
