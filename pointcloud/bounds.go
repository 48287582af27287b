package pointcloud

import (
	"sync"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/utils"
)

// BoundingBox returns the componentwise min and max corners of the cloud's
// axis-aligned extent. An empty cloud has no extent and returns ErrEmptyCloud.
func (cloud *PointCloud) BoundingBox() (r3.Vector, r3.Vector, error) {
	if cloud.Size() == 0 {
		return r3.Vector{}, r3.Vector{}, ErrEmptyCloud
	}
	meta := cloud.meta
	minPoint := r3.Vector{X: meta.MinX, Y: meta.MinY, Z: meta.MinZ}
	maxPoint := r3.Vector{X: meta.MaxX, Y: meta.MaxY, Z: meta.MaxZ}
	return minPoint, maxPoint, nil
}

// NewBounds builds the closed 2D footprint region [minX, maxX] x [minY, maxY].
// Degenerate zero-width or zero-height bounds are legal.
func NewBounds(minX, minY, maxX, maxY float64) r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: minX, Hi: maxX},
		Y: r1.Interval{Lo: minY, Hi: maxY},
	}
}

// SelectInBounds returns the indices of every point whose x and y coordinates
// fall within bounds, both ends inclusive. The z coordinate is unconstrained:
// selection filters on the 2D footprint only. Runs a full scan of the cloud.
func SelectInBounds(cloud *PointCloud, bounds r2.Rect) []int {
	indices := []int{}
	for i, p := range cloud.positions {
		if bounds.ContainsPoint(r2.Point{X: p.X, Y: p.Y}) {
			indices = append(indices, i)
		}
	}
	return indices
}

// SelectInBoundsBatched is SelectInBounds fanned out over numBatches
// goroutines. Results are concatenated in batch order, so indices come back
// ascending just as in the serial scan.
func SelectInBoundsBatched(cloud *PointCloud, bounds r2.Rect, numBatches int) []int {
	size := cloud.Size()
	if numBatches <= 1 || size <= numBatches {
		return SelectInBounds(cloud, bounds)
	}

	batchSize := (size + numBatches - 1) / numBatches
	results := make([][]int, numBatches)
	var wg sync.WaitGroup
	for batch := 0; batch < numBatches; batch++ {
		batch := batch
		from := batch * batchSize
		to := from + batchSize
		if to > size {
			to = size
		}
		wg.Add(1)
		utils.PanicCapturingGo(func() {
			defer wg.Done()
			var indices []int
			for i := from; i < to; i++ {
				p := cloud.positions[i]
				if bounds.ContainsPoint(r2.Point{X: p.X, Y: p.Y}) {
					indices = append(indices, i)
				}
			}
			results[batch] = indices
		})
	}
	wg.Wait()

	indices := []int{}
	for _, r := range results {
		indices = append(indices, r...)
	}
	return indices
}
