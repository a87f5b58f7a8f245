package octree

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/logging"
	"go.viam.com/collide/narrowphase"
	"go.viam.com/collide/spatial"
)

func mustTree(t *testing.T, side, resolution float64) *Tree {
	t.Helper()
	tr, err := New(r3.Vector{}, side, resolution, logging.NewTestLogger("octree-test"))
	test.That(t, err, test.ShouldBeNil)
	return tr
}

func TestNewRejectsBadParameters(t *testing.T) {
	_, err := New(r3.Vector{}, -1, 0.5, nil)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = New(r3.Vector{}, 4, 0, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSetOccupancyClassifiesLeaf(t *testing.T) {
	tr := mustTree(t, 4, 1)
	err := tr.SetOccupancy(r3.Vector{X: 1.5, Y: 1.5, Z: 1.5}, 0.9)
	test.That(t, err, test.ShouldBeNil)

	prob, kind, ok := tr.At(r3.Vector{X: 1.5, Y: 1.5, Z: 1.5})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, prob, test.ShouldAlmostEqual, 0.9)
	test.That(t, kind, test.ShouldEqual, LeafNodeOccupied)

	// A far corner cell should remain at the root's initial uncertain
	// probability, untouched by the split.
	prob2, kind2, ok2 := tr.At(r3.Vector{X: -1.5, Y: -1.5, Z: -1.5})
	test.That(t, ok2, test.ShouldBeTrue)
	test.That(t, prob2, test.ShouldAlmostEqual, 0.5)
	test.That(t, kind2, test.ShouldEqual, LeafNodeUncertain)
}

func TestSetOccupancyOutOfBounds(t *testing.T) {
	tr := mustTree(t, 2, 0.5)
	err := tr.SetOccupancy(r3.Vector{X: 100}, 1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestClassifyThresholds(t *testing.T) {
	test.That(t, classify(0.9, DefaultOccupancyThreshold, DefaultFreeThreshold), test.ShouldEqual, LeafNodeOccupied)
	test.That(t, classify(0.0, DefaultOccupancyThreshold, DefaultFreeThreshold), test.ShouldEqual, LeafNodeFree)
	test.That(t, classify(0.3, DefaultOccupancyThreshold, DefaultFreeThreshold), test.ShouldEqual, LeafNodeUncertain)
}

func TestCollideOctreeOctreeDetectsOverlappingOccupiedCells(t *testing.T) {
	a := mustTree(t, 4, 1)
	b := mustTree(t, 4, 1)
	test.That(t, a.SetOccupancy(r3.Vector{X: 1.5, Y: 1.5, Z: 1.5}, 1), test.ShouldBeNil)
	test.That(t, a.SetOccupancy(r3.Vector{X: -1.5, Y: -1.5, Z: -1.5}, 0), test.ShouldBeNil)
	test.That(t, b.SetOccupancy(r3.Vector{X: 1.5, Y: 1.5, Z: 1.5}, 1), test.ShouldBeNil)
	test.That(t, b.SetOccupancy(r3.Vector{X: -1.5, Y: -1.5, Z: -1.5}, 0), test.ShouldBeNil)

	identity := spatial.NewZeroPose()
	contacts := CollideOctreeOctree(a, identity, b, identity, DefaultTraversalRequest())
	test.That(t, len(contacts), test.ShouldEqual, 1)
}

func TestCollideOctreeOctreeSeparatedTreesReportNoContact(t *testing.T) {
	a := mustTree(t, 4, 1)
	b := mustTree(t, 4, 1)
	test.That(t, a.SetOccupancy(r3.Vector{X: 1.5, Y: 1.5, Z: 1.5}, 1), test.ShouldBeNil)
	test.That(t, b.SetOccupancy(r3.Vector{X: -1.5, Y: -1.5, Z: -1.5}, 1), test.ShouldBeNil)

	identity := spatial.NewZeroPose()
	contacts := CollideOctreeOctree(a, identity, b, identity, DefaultTraversalRequest())
	test.That(t, len(contacts), test.ShouldEqual, 0)
}

func TestDistanceOctreeOctree(t *testing.T) {
	a := mustTree(t, 4, 1)
	b := mustTree(t, 4, 1)
	test.That(t, a.SetOccupancy(r3.Vector{X: 1.5, Y: 1.5, Z: 1.5}, 1), test.ShouldBeNil)
	test.That(t, b.SetOccupancy(r3.Vector{X: -1.5, Y: -1.5, Z: -1.5}, 1), test.ShouldBeNil)

	identity := spatial.NewZeroPose()
	dist, found := DistanceOctreeOctree(a, identity, b, identity, narrowphase.DefaultDistanceRequest())
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, dist, test.ShouldBeGreaterThan, 0.0)
}

func TestCollideOctreeShape(t *testing.T) {
	tr := mustTree(t, 4, 1)
	test.That(t, tr.SetOccupancy(r3.Vector{X: 1.5, Y: 1.5, Z: 1.5}, 1), test.ShouldBeNil)

	sphere := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{X: 1.5, Y: 1.5, Z: 1.5}), 0.1)
	identity := spatial.NewZeroPose()
	contacts := CollideOctreeShape(tr, identity, sphere, identity, DefaultTraversalRequest())
	test.That(t, len(contacts), test.ShouldEqual, 1)

	far := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{X: 100}), 0.1)
	noContacts := CollideOctreeShape(tr, identity, far, identity, DefaultTraversalRequest())
	test.That(t, len(noContacts), test.ShouldEqual, 0)
}

func TestDistanceOctreeShape(t *testing.T) {
	tr := mustTree(t, 4, 1)
	test.That(t, tr.SetOccupancy(r3.Vector{X: 1.5, Y: 1.5, Z: 1.5}, 1), test.ShouldBeNil)

	sphere := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{X: 1.5, Y: 1.5, Z: 10}), 0.1)
	identity := spatial.NewZeroPose()
	dist, found := DistanceOctreeShape(tr, identity, sphere, identity, narrowphase.DefaultDistanceRequest())
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, dist, test.ShouldBeGreaterThan, 0.0)
}

func TestContactCapHonoredUnlessExhaustive(t *testing.T) {
	a := mustTree(t, 4, 1)
	b := mustTree(t, 4, 1)
	// Two distinct occupied cell pairs at matching positions.
	for _, p := range []r3.Vector{{X: 1.5, Y: 1.5, Z: 1.5}, {X: -1.5, Y: -1.5, Z: -1.5}} {
		test.That(t, a.SetOccupancy(p, 1), test.ShouldBeNil)
		test.That(t, b.SetOccupancy(p, 1), test.ShouldBeNil)
	}

	identity := spatial.NewZeroPose()
	capped := DefaultTraversalRequest()
	capped.MaxContacts = 1
	contacts := CollideOctreeOctree(a, identity, b, identity, capped)
	test.That(t, len(contacts), test.ShouldEqual, 1)

	exhaustive := capped
	exhaustive.Exhaustive = true
	exhaustive.MaxContacts = 10
	all := CollideOctreeOctree(a, identity, b, identity, exhaustive)
	test.That(t, len(all), test.ShouldEqual, 2)
}
