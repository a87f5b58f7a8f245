package narrowphase

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/gjk"
	"go.viam.com/collide/spatial"
)

func TestSolveCollisionGeneralPathPenetrationDepth(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 2, Y: 2, Z: 2})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 0.5}), r3.Vector{X: 2, Y: 2, Z: 2})

	res := SolveCollision(b1, b2, DefaultCollisionRequest())
	test.That(t, res.IsCollision, test.ShouldBeTrue)
	test.That(t, res.Status, test.ShouldEqual, gjk.CollisionWithPenetrationInformation)
	test.That(t, res.PenetrationDepth, test.ShouldAlmostEqual, 1.5, 1e-4)
}

func TestSecurityMarginReportsNearTouchingBoxesAsColliding(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 1.2}), r3.Vector{X: 1, Y: 1, Z: 1})

	plain := DefaultCollisionRequest()
	res := SolveCollision(b1, b2, plain)
	test.That(t, res.IsCollision, test.ShouldBeFalse)

	margined := DefaultCollisionRequest()
	margined.SecurityMargin = 0.3
	res2 := SolveCollision(b1, b2, margined)
	test.That(t, res2.IsCollision, test.ShouldBeTrue)
	// The gap (0.2) is reported as a negative "penetration" depth rather
	// than a true overlap, since the cores never actually interpenetrate.
	test.That(t, res2.PenetrationDepth, test.ShouldAlmostEqual, -0.2, 1e-6)
}

func TestDistanceUpperBoundThreadsThroughToGJK(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 20}), r3.Vector{X: 1, Y: 1, Z: 1})

	req := DefaultCollisionRequest()
	req.DistanceUpperBound = 1.0
	res := SolveCollision(b1, b2, req)
	test.That(t, res.IsCollision, test.ShouldBeFalse)
	test.That(t, res.Status, test.ShouldEqual, gjk.NoCollisionEarlyStopped)
}

func TestEnableDistanceLowerBoundPopulatesBound(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 4}), r3.Vector{X: 1, Y: 1, Z: 1})

	req := DefaultCollisionRequest()
	req.EnableDistanceLowerBound = true
	res := SolveCollision(b1, b2, req)
	test.That(t, res.IsCollision, test.ShouldBeFalse)
	test.That(t, res.DistanceLowerBound, test.ShouldAlmostEqual, 3.0, 1e-6)
}

func TestEnableSignedDistanceReportsNegativePenetrationOnOverlap(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 2, Y: 2, Z: 2})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 0.5}), r3.Vector{X: 2, Y: 2, Z: 2})

	req := DefaultDistanceRequest()
	plainRes := SolveDistance(b1, b2, req)
	test.That(t, plainRes.IsCollision, test.ShouldBeTrue)
	test.That(t, plainRes.Distance, test.ShouldEqual, 0.0)

	req.EnableSignedDistance = true
	signedRes := SolveDistance(b1, b2, req)
	test.That(t, signedRes.IsCollision, test.ShouldBeTrue)
	test.That(t, signedRes.Distance, test.ShouldAlmostEqual, -1.5, 1e-4)
}

func TestSolveDistanceSymmetryOnGeneralPath(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 4}), r3.Vector{X: 1, Y: 1, Z: 1})

	fwd := SolveDistance(b1, b2, DefaultDistanceRequest())
	rev := SolveDistance(b2, b1, DefaultDistanceRequest())
	test.That(t, fwd.Distance, test.ShouldAlmostEqual, rev.Distance, 1e-6)
}

func TestAbsErrSelectsAbsoluteConvergence(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 3}), r3.Vector{X: 1, Y: 1, Z: 1})

	req := DefaultDistanceRequest()
	req.AbsErr = 1e-3
	res := SolveDistance(b1, b2, req)
	test.That(t, res.Distance, test.ShouldAlmostEqual, 2.0, 1e-2)
}
