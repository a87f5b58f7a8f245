package minkowski

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/spatial"
)

func TestSupportCombinesBothShapesInFrame1(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 2, Y: 2, Z: 2})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 5}), r3.Vector{X: 2, Y: 2, Z: 2})
	adapter := New(b1, b2)

	w, w1, w2 := adapter.Support(r3.Vector{X: 1})
	// b1's extreme point along +X is its +X face (x=1); b2's extreme point
	// along -X in its own frame, re-expressed in frame 1, is its near face
	// at world x=4, i.e. local x=4 relative to b1's origin.
	test.That(t, w1.X, test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, w2.X, test.ShouldAlmostEqual, 4.0, 1e-9)
	test.That(t, w.X, test.ShouldAlmostEqual, -3.0, 1e-9)
}

func TestSupportIsAntipodalAcrossOppositeDirections(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 2, Y: 2, Z: 2})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 5}), r3.Vector{X: 2, Y: 2, Z: 2})
	adapter := New(b1, b2)

	wPos, _, _ := adapter.Support(r3.Vector{X: 1})
	wNeg, _, _ := adapter.Support(r3.Vector{X: -1})
	// The Minkowski difference of two boxes is itself a box (centered on
	// the translation between them): its support along +d and -d are
	// reflections of one another through that center.
	test.That(t, wPos.X+wNeg.X, test.ShouldAlmostEqual, -2*5.0, 1e-9)
}

func TestCombinedSweptSphereRadiusSumsBothShapes(t *testing.T) {
	s1 := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{}), 0.3)
	s2 := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{X: 2}), 0.7)
	adapter := New(s1, s2)
	test.That(t, adapter.CombinedSweptSphereRadius(), test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestToWorld1RoundTripsThroughShape1Pose(t *testing.T) {
	pose := spatial.NewPoseFromPoint(r3.Vector{X: 10, Y: -5})
	s1 := spatial.NewSphere(pose, 1)
	s2 := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{}), 1)
	adapter := New(s1, s2)

	world := adapter.ToWorld1(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, world.X, test.ShouldAlmostEqual, 11.0, 1e-9)
	test.That(t, world.Y, test.ShouldAlmostEqual, -3.0, 1e-9)
	test.That(t, world.Z, test.ShouldAlmostEqual, 3.0, 1e-9)
}

func TestHintsRoundTripThroughSetHints(t *testing.T) {
	s1 := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{}), 1)
	s2 := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{X: 3}), 1)
	adapter := New(s1, s2)
	adapter.SetHints(2, 5)

	// Sphere's Support ignores and zeroes the hint (its core is a point),
	// so the round trip through one Support call should reset both to 0
	// rather than echo back the seeded values.
	adapter.Support(r3.Vector{X: 1})
	h1, h2 := adapter.Hints()
	test.That(t, h1, test.ShouldEqual, 0)
	test.That(t, h2, test.ShouldEqual, 0)
}
