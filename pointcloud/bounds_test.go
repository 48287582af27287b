package pointcloud

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestSelectInBounds(t *testing.T) {
	cloud := New([]r3.Vector{
		NewVector(0, 0, 0),    // 0: lower corner
		NewVector(2, 2, 5),    // 1: interior, high z
		NewVector(4, 4, -3),   // 2: upper corner
		NewVector(4, 0, 0),    // 3: on max x edge
		NewVector(5, 2, 0),    // 4: outside x
		NewVector(2, -0.5, 0), // 5: outside y
	})
	bounds := NewBounds(0, 0, 4, 4)

	// boundaries are inclusive on both ends and z is unconstrained
	indices := SelectInBounds(cloud, bounds)
	test.That(t, indices, test.ShouldResemble, []int{0, 1, 2, 3})

	// degenerate zero-width bounds select the colinear points only
	line := NewBounds(2, 0, 2, 4)
	test.That(t, SelectInBounds(cloud, line), test.ShouldResemble, []int{1})

	// inverted bounds are the empty region
	empty := NewBounds(3, 0, 1, 4)
	test.That(t, SelectInBounds(cloud, empty), test.ShouldHaveLength, 0)
}

func TestSelectInBoundsBatched(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	positions := make([]r3.Vector, 500)
	for i := range positions {
		positions[i] = NewVector(r.Float64()*10, r.Float64()*10, r.Float64()*10)
	}
	cloud := New(positions)
	bounds := NewBounds(2, 3, 7, 8)

	want := SelectInBounds(cloud, bounds)
	test.That(t, len(want), test.ShouldBeGreaterThan, 0)

	for _, numBatches := range []int{1, 2, 3, 8} {
		got := SelectInBoundsBatched(cloud, bounds, numBatches)
		test.That(t, got, test.ShouldResemble, want)
	}

	// more batches than points degrades to the serial scan
	small := New(positions[:3])
	test.That(t,
		SelectInBoundsBatched(small, bounds, 8),
		test.ShouldResemble,
		SelectInBounds(small, bounds))
}
