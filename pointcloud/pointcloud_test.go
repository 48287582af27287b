package pointcloud

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestPointCloudBasic(t *testing.T) {
	cloud := New([]r3.Vector{
		NewVector(0, 0, 0),
		NewVector(1, 0, 1),
		NewVector(-1, -2, 1),
	})

	test.That(t, cloud.Size(), test.ShouldEqual, 3)
	test.That(t, cloud.At(0), test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 0})
	test.That(t, cloud.At(2), test.ShouldResemble, r3.Vector{X: -1, Y: -2, Z: 1})
	test.That(t, cloud.HasFeatures(), test.ShouldBeFalse)
	test.That(t, cloud.FeatureDim(), test.ShouldEqual, 0)
	test.That(t, cloud.FeaturesAt(1), test.ShouldBeNil)

	count := 0
	cloud.Iterate(func(i int, p r3.Vector) bool {
		test.That(t, p, test.ShouldResemble, cloud.At(i))
		count++
		return true
	})
	test.That(t, count, test.ShouldEqual, 3)

	count = 0
	cloud.Iterate(func(i int, p r3.Vector) bool {
		count++
		return false
	})
	test.That(t, count, test.ShouldEqual, 1)

	meta := cloud.MetaData()
	test.That(t, meta.MinX, test.ShouldEqual, -1)
	test.That(t, meta.MaxX, test.ShouldEqual, 1)
	test.That(t, meta.MinY, test.ShouldEqual, -2)
	test.That(t, meta.MaxY, test.ShouldEqual, 0)
	test.That(t, meta.MinZ, test.ShouldEqual, 0)
	test.That(t, meta.MaxZ, test.ShouldEqual, 1)
}

func TestPointCloudFeatures(t *testing.T) {
	positions := []r3.Vector{
		NewVector(0, 0, 0),
		NewVector(1, 1, 1),
	}
	features := mat.NewDense(2, 4, []float64{
		0.1, 0.2, 0.3, 0.4,
		1.1, 1.2, 1.3, 1.4,
	})

	cloud, err := NewWithFeatures(positions, features)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cloud.HasFeatures(), test.ShouldBeTrue)
	test.That(t, cloud.FeatureDim(), test.ShouldEqual, 4)
	test.That(t, cloud.FeaturesAt(1), test.ShouldResemble, []float64{1.1, 1.2, 1.3, 1.4})

	// row count must match point count
	_, err = NewWithFeatures(positions, mat.NewDense(3, 4, nil))
	test.That(t, err, test.ShouldNotBeNil)

	// nil features are the same as no features
	cloud, err = NewWithFeatures(positions, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cloud.HasFeatures(), test.ShouldBeFalse)
}

func TestBoundingBox(t *testing.T) {
	positions := []r3.Vector{
		NewVector(3, -1, 2),
		NewVector(-5, 4, 0),
		NewVector(1, 1, 7),
		NewVector(0, -3, -2),
	}
	cloud := New(positions)

	minPoint, maxPoint, err := cloud.BoundingBox()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, minPoint, test.ShouldResemble, r3.Vector{X: -5, Y: -3, Z: -2})
	test.That(t, maxPoint, test.ShouldResemble, r3.Vector{X: 3, Y: 4, Z: 7})

	// every point lies within the box componentwise
	for _, p := range positions {
		test.That(t, p.X, test.ShouldBeBetweenOrEqual, minPoint.X, maxPoint.X)
		test.That(t, p.Y, test.ShouldBeBetweenOrEqual, minPoint.Y, maxPoint.Y)
		test.That(t, p.Z, test.ShouldBeBetweenOrEqual, minPoint.Z, maxPoint.Z)
	}

	_, _, err = New(nil).BoundingBox()
	test.That(t, errors.Is(err, ErrEmptyCloud), test.ShouldBeTrue)
}
