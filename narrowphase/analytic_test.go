package narrowphase

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/spatial"
)

func TestSphereSphereCollisionAndDistance(t *testing.T) {
	s1 := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{}), 1)
	s2 := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{X: 1.5}), 1)

	colRes := SolveCollision(s1, s2, DefaultCollisionRequest())
	test.That(t, colRes.IsCollision, test.ShouldBeTrue)
	test.That(t, colRes.PenetrationDepth, test.ShouldAlmostEqual, 0.5, 1e-9)
	test.That(t, colRes.Normal.X, test.ShouldAlmostEqual, 1.0, 1e-9)

	s3 := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{X: 3}), 1)
	distRes := SolveDistance(s1, s3, DefaultDistanceRequest())
	test.That(t, distRes.IsCollision, test.ShouldBeFalse)
	test.That(t, distRes.Distance, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestSphereBoxPenetrationFallback(t *testing.T) {
	box := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 4, Y: 4, Z: 4})
	sphere := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{X: 1.9}), 0.5)

	res := SolveCollision(sphere, box, DefaultCollisionRequest())
	test.That(t, res.IsCollision, test.ShouldBeTrue)
	// center sits inside the box, 0.1 from the +X face, so the minimum
	// face-gap fallback should pick +X as the separating axis.
	test.That(t, res.Normal.X, test.ShouldBeGreaterThan, 0.0)
	test.That(t, res.PenetrationDepth, test.ShouldAlmostEqual, 0.6, 1e-9)
}

func TestShapeHalfSpaceSeparation(t *testing.T) {
	ground := spatial.NewHalfSpace(spatial.NewZeroPose(), r3.Vector{Z: 1}, 0)
	sphere := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{Z: 2}), 1)

	distRes := SolveDistance(sphere, ground, DefaultDistanceRequest())
	test.That(t, distRes.IsCollision, test.ShouldBeFalse)
	test.That(t, distRes.Distance, test.ShouldAlmostEqual, 1.0, 1e-9)

	sphere2 := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{Z: 0.5}), 1)
	colRes := SolveCollision(sphere2, ground, DefaultCollisionRequest())
	test.That(t, colRes.IsCollision, test.ShouldBeTrue)
	test.That(t, colRes.PenetrationDepth, test.ShouldAlmostEqual, 0.5, 1e-9)
}

func TestCapsuleCapsuleSeparation(t *testing.T) {
	a := spatial.NewCapsule(spatial.NewPoseFromPoint(r3.Vector{}), 0.5, 2)
	b := spatial.NewCapsule(spatial.NewPoseFromPoint(r3.Vector{X: 0.8}), 0.5, 2)

	res := SolveCollision(a, b, DefaultCollisionRequest())
	test.That(t, res.IsCollision, test.ShouldBeTrue)
	test.That(t, res.PenetrationDepth, test.ShouldAlmostEqual, 0.2, 1e-9)

	c := spatial.NewCapsule(spatial.NewPoseFromPoint(r3.Vector{X: 3}), 0.5, 2)
	dist := SolveDistance(a, c, DefaultDistanceRequest())
	test.That(t, dist.IsCollision, test.ShouldBeFalse)
	test.That(t, dist.Distance, test.ShouldAlmostEqual, 2.0, 1e-9)
}

func TestTriangleTriangleSeparation(t *testing.T) {
	tri1 := spatial.NewTriangle(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1})
	disjoint := spatial.NewTriangle(r3.Vector{X: 0.1, Y: 0.1, Z: 2}, r3.Vector{X: 2, Z: 2}, r3.Vector{Y: 2, Z: 2})

	distRes := SolveDistance(tri1, disjoint, DefaultDistanceRequest())
	test.That(t, distRes.IsCollision, test.ShouldBeFalse)
	test.That(t, distRes.Distance, test.ShouldAlmostEqual, 2.0, 1e-9)

	crossing := spatial.NewTriangle(r3.Vector{X: 0.3, Y: -1, Z: -1}, r3.Vector{X: 0.3, Y: 2, Z: -1}, r3.Vector{X: 0.3, Y: 0.5, Z: 2})
	colRes := SolveCollision(tri1, crossing, DefaultCollisionRequest())
	test.That(t, colRes.IsCollision, test.ShouldBeTrue)
	test.That(t, colRes.PenetrationDepth, test.ShouldAlmostEqual, 0.0, 1e-9)
}

func TestGeneralPathFallsBackForUnrecognizedPair(t *testing.T) {
	box1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1})
	box2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 3}), r3.Vector{X: 1, Y: 1, Z: 1})

	// no analytic path covers box-box, so this exercises GJK/EPA.
	res := SolveCollision(box1, box2, DefaultCollisionRequest())
	test.That(t, res.IsCollision, test.ShouldBeFalse)
}
