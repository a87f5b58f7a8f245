package spatial

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestAABBOverlapsAndContains(t *testing.T) {
	a := NewAABB(r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 1, Y: 1, Z: 1})
	b := NewAABB(r3.Vector{X: 0.5}, r3.Vector{X: 2, Y: 2, Z: 2})
	test.That(t, a.Overlaps(b), test.ShouldBeTrue)
	test.That(t, a.Contains(r3.Vector{}), test.ShouldBeTrue)
	test.That(t, a.Contains(r3.Vector{X: 5}), test.ShouldBeFalse)

	c := NewAABB(r3.Vector{X: 3}, r3.Vector{X: 4, Y: 1, Z: 1})
	test.That(t, a.Overlaps(c), test.ShouldBeFalse)
}

func TestAABBDistanceLowerBound(t *testing.T) {
	a := NewAABB(r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1})
	b := NewAABB(r3.Vector{X: 2}, r3.Vector{X: 3, Y: 1, Z: 1})
	test.That(t, a.DistanceLowerBound(b), test.ShouldAlmostEqual, 1.0)

	touching := NewAABB(r3.Vector{X: 1}, r3.Vector{X: 2, Y: 1, Z: 1})
	test.That(t, a.DistanceLowerBound(touching), test.ShouldAlmostEqual, 0.0)
}

func TestAABBOctantCovers(t *testing.T) {
	root := NewAABB(r3.Vector{X: -1, Y: -1, Z: -1}, r3.Vector{X: 1, Y: 1, Z: 1})
	var union AABB
	for i := 0; i < 8; i++ {
		oct := root.Octant(i)
		test.That(t, oct.HalfExtents().X, test.ShouldAlmostEqual, 0.5)
		if i == 0 {
			union = oct
		} else {
			union = union.Union(oct)
		}
	}
	test.That(t, union.Min, test.ShouldResemble, root.Min)
	test.That(t, union.Max, test.ShouldResemble, root.Max)
}

func TestAABBOctantHighLowConvention(t *testing.T) {
	root := NewAABB(r3.Vector{X: -2, Y: -2, Z: -2}, r3.Vector{X: 2, Y: 2, Z: 2})
	// child 0 has every axis "low"
	low := root.Octant(0)
	test.That(t, low.Max.X, test.ShouldAlmostEqual, 0.0)
	test.That(t, low.Max.Y, test.ShouldAlmostEqual, 0.0)
	test.That(t, low.Max.Z, test.ShouldAlmostEqual, 0.0)

	// child 7 (0b111) has every axis "high"
	high := root.Octant(7)
	test.That(t, high.Min.X, test.ShouldAlmostEqual, 0.0)
	test.That(t, high.Min.Y, test.ShouldAlmostEqual, 0.0)
	test.That(t, high.Min.Z, test.ShouldAlmostEqual, 0.0)
}
