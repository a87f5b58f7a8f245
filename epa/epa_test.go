package epa

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/gjk"
	"go.viam.com/collide/minkowski"
	"go.viam.com/collide/spatial"
)

// terminalTetrahedron runs GJK to Collision on an overlapping pair and
// returns its terminal 4-vertex simplex, the fixture every EPA test seeds
// from (EPA's contract requires a GJK tetrahedron enclosing the origin).
func terminalTetrahedron(t *testing.T, s1, s2 spatial.Shape) (*minkowski.Adapter, gjk.Simplex) {
	t.Helper()
	adapter := minkowski.New(s1, s2)
	res := gjk.Solve(adapter, r3.Vector{X: 1}, gjk.DefaultConfig())
	test.That(t, res.Status, test.ShouldEqual, gjk.Collision)
	test.That(t, res.Simplex.Count, test.ShouldEqual, 4)
	return adapter, res.Simplex
}

func TestSolveOverlappingBoxesRecoversMinimumPenetrationAxis(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 2, Y: 2, Z: 2})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 0.5}), r3.Vector{X: 2, Y: 2, Z: 2})
	adapter, seed := terminalTetrahedron(t, b1, b2)

	res := Solve(adapter, seed, DefaultConfig())
	test.That(t, res.Status, test.ShouldEqual, Valid)
	test.That(t, res.PenetrationDepth, test.ShouldAlmostEqual, 1.5, 1e-4)
	test.That(t, math.Abs(res.Normal.X), test.ShouldAlmostEqual, 1.0, 1e-4)
	test.That(t, math.Abs(res.Normal.Y), test.ShouldBeLessThan, 1e-4)
	test.That(t, math.Abs(res.Normal.Z), test.ShouldBeLessThan, 1e-4)
}

func TestSolveRejectsNonTetrahedronSeed(t *testing.T) {
	adapter := minkowski.New(
		spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1}),
		spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1}),
	)
	var seed gjk.Simplex
	seed.Add(gjk.Vertex{W: r3.Vector{X: 1}})
	res := Solve(adapter, seed, DefaultConfig())
	test.That(t, res.Status, test.ShouldEqual, NonConvex)
}

func TestSolveHonoursFaceCapacityCap(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 2, Y: 2, Z: 2})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 0.5}), r3.Vector{X: 2, Y: 2, Z: 2})
	adapter, seed := terminalTetrahedron(t, b1, b2)

	cfg := DefaultConfig()
	cfg.MaxFaces = 4 // exactly the seed tetrahedron's own face count; the
	// first expansion already exceeds it, forcing a best-effort return.
	res := Solve(adapter, seed, cfg)
	test.That(t, res.Status, test.ShouldNotEqual, DidNotRun)
	// Best-effort: the closest face's distance is still reported as a
	// non-negative depth.
	test.That(t, res.PenetrationDepth, test.ShouldBeGreaterThanOrEqualTo, 0.0)
}

func TestStatusStringsAreDistinguishable(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range []Status{
		DidNotRun, Running, Valid, AccuracyReached, OutOfFaces, OutOfVertices, Failed, Degenerated, NonConvex, InvalidHull,
	} {
		str := s.String()
		test.That(t, seen[str], test.ShouldBeFalse)
		seen[str] = true
	}
}
