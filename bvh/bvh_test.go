package bvh

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/spatial"
)

func gridTriangles(n int) []*spatial.Triangle {
	tris := make([]*spatial.Triangle, n)
	for i := 0; i < n; i++ {
		x := float64(i) * 2
		tris[i] = spatial.NewTriangle(
			r3.Vector{X: x},
			r3.Vector{X: x + 1},
			r3.Vector{X: x, Y: 1},
		)
	}
	return tris
}

func TestBuildStaysLeafBelowThreshold(t *testing.T) {
	root := Build(gridTriangles(3))
	test.That(t, root.IsLeaf(), test.ShouldBeTrue)
	test.That(t, len(root.Triangles), test.ShouldEqual, 3)
}

func TestBuildSplitsAboveThreshold(t *testing.T) {
	root := Build(gridTriangles(10))
	test.That(t, root.IsLeaf(), test.ShouldBeFalse)
	test.That(t, root.Left, test.ShouldNotBeNil)
	test.That(t, root.Right, test.ShouldNotBeNil)
}

func TestTriangleTriangleIntersectCrossing(t *testing.T) {
	// a spans the z=0 plane; b spans the y=0.5 plane, crossing through a's
	// interior along a short segment that touches neither triangle's
	// vertices — a case a vertex-only distance approximation would miss.
	a := spatial.NewTriangle(r3.Vector{X: -2, Y: -2}, r3.Vector{X: 4, Y: -2}, r3.Vector{X: -2, Y: 4})
	b := spatial.NewTriangle(
		r3.Vector{X: 0.5, Y: 0.5, Z: -2},
		r3.Vector{X: 0.5, Y: 0.5, Z: 2},
		r3.Vector{X: 2, Y: 0.5, Z: 5},
	)
	test.That(t, triangleTriangleIntersect(a, b), test.ShouldBeTrue)
	test.That(t, triangleTriangleDistance(a, b), test.ShouldAlmostEqual, 0.0)
}

func TestTriangleTriangleDistanceDisjoint(t *testing.T) {
	a := spatial.NewTriangle(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1})
	b := spatial.NewTriangle(r3.Vector{X: 5}, r3.Vector{X: 6}, r3.Vector{X: 5, Y: 1})
	test.That(t, triangleTriangleIntersect(a, b), test.ShouldBeFalse)
	test.That(t, triangleTriangleDistance(a, b), test.ShouldAlmostEqual, 4.0)
}

func TestCollidesWithBVHDetectsOverlap(t *testing.T) {
	meshA := Build([]*spatial.Triangle{
		spatial.NewTriangle(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}),
	})
	meshB := Build([]*spatial.Triangle{
		spatial.NewTriangle(r3.Vector{X: -1, Y: -1}, r3.Vector{X: 2, Y: -1}, r3.Vector{X: -1, Y: 2}),
	})
	identity := spatial.NewZeroPose()
	collides, dist := CollidesWithBVH(meshA, identity, meshB, identity, 0)
	test.That(t, collides, test.ShouldBeTrue)
	test.That(t, dist, test.ShouldAlmostEqual, 0.0)
}

func TestDistanceFromBVHSeparated(t *testing.T) {
	meshA := Build([]*spatial.Triangle{
		spatial.NewTriangle(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}),
	})
	meshB := Build([]*spatial.Triangle{
		spatial.NewTriangle(r3.Vector{X: 10}, r3.Vector{X: 11}, r3.Vector{X: 10, Y: 1}),
	})
	identity := spatial.NewZeroPose()
	dist := DistanceFromBVH(meshA, identity, meshB, identity)
	test.That(t, dist, test.ShouldAlmostEqual, 9.0)
}
