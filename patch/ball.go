package patch

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/viam-labs/patchcloud/kdtree"
	pc "github.com/viam-labs/patchcloud/pointcloud"
)

// BallConfig sets the neighborhood extent of a Ball. Exactly one of Radius
// or K must be positive.
type BallConfig struct {
	// Radius selects radius neighborhoods when positive.
	Radius float64
	// K selects k-nearest-neighbor neighborhoods when positive.
	K int
}

func (cfg BallConfig) validate() error {
	hasRadius := cfg.Radius > 0
	hasK := cfg.K > 0
	if hasRadius == hasK {
		return errors.Wrapf(ErrInvalidConfig,
			"exactly one of radius (%.2f) or k (%d) must be set", cfg.Radius, cfg.K)
	}
	return nil
}

// Ball produces neighborhood patches over an ordered collection of clouds.
// Every point of every cloud is a patch center, so Len is the total point
// count; a global index resolves to (cloud, point) by cumulative-length
// scanning, the same scheme the Aggregator uses for patch sources.
type Ball struct {
	clouds []*pc.PointCloud
	trees  []kdtree.KDTree
	cfg    BallConfig
	logger golog.Logger
}

// NewBall indexes every cloud with a k-d tree. Index construction is
// expensive and happens once here, never per query. Any empty cloud fails
// the whole construction with ErrEmptyCloud.
func NewBall(ctx context.Context, clouds []*pc.PointCloud, cfg BallConfig, logger golog.Logger) (*Ball, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	trees := make([]kdtree.KDTree, len(clouds))
	for i, cloud := range clouds {
		tree, err := kdtree.New(ctx, cloud, logger)
		if err != nil {
			return nil, errors.Wrapf(err, "indexing cloud %d", i)
		}
		trees[i] = tree
	}
	return &Ball{
		clouds: clouds,
		trees:  trees,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Len returns the total point count across all registered clouds.
func (b *Ball) Len() int {
	total := 0
	for _, cloud := range b.clouds {
		total += cloud.Size()
	}
	return total
}

// At returns the configured neighborhood of the point at global index idx.
func (b *Ball) At(idx int) (Patch, error) {
	which, local, err := b.resolve(idx)
	if err != nil {
		return Patch{}, err
	}
	cloud := b.clouds[which]
	center := cloud.At(local)

	var neighbors []kdtree.Neighbor
	if b.cfg.Radius > 0 {
		neighbors = b.trees[which].RadiusQuery(center, b.cfg.Radius)
	} else {
		neighbors, err = b.trees[which].KNNQuery(center, b.cfg.K)
		if err != nil {
			return Patch{}, err
		}
	}
	return Patch{Cloud: cloud, Indices: neighborIndices(neighbors)}, nil
}

// PatchAt returns the radius neighborhood of the point at global index idx,
// overriding any configured extent. Distances are dropped; only indices into
// the owning cloud are returned.
func (b *Ball) PatchAt(idx int, radius float64) ([]int, error) {
	which, local, err := b.resolve(idx)
	if err != nil {
		return nil, err
	}
	neighbors := b.trees[which].RadiusQuery(b.clouds[which].At(local), radius)
	return neighborIndices(neighbors), nil
}

func (b *Ball) resolve(idx int) (int, int, error) {
	return resolveLinear(len(b.clouds), func(i int) int { return b.clouds[i].Size() }, idx)
}

func neighborIndices(neighbors []kdtree.Neighbor) []int {
	indices := make([]int, len(neighbors))
	for i, n := range neighbors {
		indices[i] = n.Index
	}
	return indices
}
