package gjk

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collide/minkowski"
	"go.viam.com/collide/spatial"
)

func TestSolveDisjointSpheresMatchesScenarioS1(t *testing.T) {
	s1 := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{}), 1)
	s2 := spatial.NewSphere(spatial.NewPoseFromPoint(r3.Vector{X: 3}), 1)
	adapter := minkowski.New(s1, s2)

	res := Solve(adapter, r3.Vector{X: 1}, DefaultConfig())
	test.That(t, res.Status, test.ShouldEqual, NoCollision)
	// Spheres' cores are points, so the raw GJK distance is center-to-center
	// (3); the per-shape radius correction that recovers the literal 1.0
	// surface distance from spec.md's S1 happens one layer up in
	// narrowphase, not inside GJK itself.
	test.That(t, res.Distance, test.ShouldAlmostEqual, 3.0, 1e-6)
}

func TestSolveDisjointBoxesConverges(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 3}), r3.Vector{X: 1, Y: 1, Z: 1})
	adapter := minkowski.New(b1, b2)

	res := Solve(adapter, r3.Vector{X: 1}, DefaultConfig())
	test.That(t, res.Status, test.ShouldEqual, NoCollision)
	test.That(t, res.Distance, test.ShouldAlmostEqual, 2.0, 1e-6)

	gap := res.Witness2.Sub(res.Witness1)
	test.That(t, gap.Norm(), test.ShouldAlmostEqual, 2.0, 1e-6)
}

func TestSolveOverlappingBoxesReportsCollision(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 2, Y: 2, Z: 2})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 0.5}), r3.Vector{X: 2, Y: 2, Z: 2})
	adapter := minkowski.New(b1, b2)

	res := Solve(adapter, r3.Vector{X: 1}, DefaultConfig())
	test.That(t, res.Status, test.ShouldEqual, Collision)
	test.That(t, res.Distance, test.ShouldEqual, 0.0)
	test.That(t, res.Simplex.Count, test.ShouldEqual, 4)
}

func TestSolveTouchingBoxesDoNotLoopForever(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 1}), r3.Vector{X: 1, Y: 1, Z: 1})
	adapter := minkowski.New(b1, b2)

	res := Solve(adapter, r3.Vector{X: 1}, DefaultConfig())
	test.That(t, res.Iterations, test.ShouldBeLessThan, DefaultConfig().MaxIterations)
	test.That(t, res.Distance, test.ShouldAlmostEqual, 0.0, 1e-6)
}

func TestDistanceUpperBoundEarlyStop(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 10}), r3.Vector{X: 1, Y: 1, Z: 1})
	adapter := minkowski.New(b1, b2)

	cfg := DefaultConfig()
	cfg.DistanceUpperBound = 1.0
	res := Solve(adapter, r3.Vector{X: 1}, cfg)
	test.That(t, res.Status, test.ShouldEqual, NoCollisionEarlyStopped)
	// The proven lower bound must be at least the upper bound that
	// triggered the stop, and must never overstate the true distance (9).
	test.That(t, res.Distance, test.ShouldBeGreaterThanOrEqualTo, cfg.DistanceUpperBound)
	test.That(t, res.Distance, test.ShouldBeLessThanOrEqualTo, 9.0+1e-6)
}

func TestDistanceUpperBoundDoesNotFireBelowThreshold(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 3}), r3.Vector{X: 1, Y: 1, Z: 1})
	adapter := minkowski.New(b1, b2)

	cfg := DefaultConfig()
	cfg.DistanceUpperBound = 100.0
	res := Solve(adapter, r3.Vector{X: 1}, cfg)
	test.That(t, res.Status, test.ShouldEqual, NoCollision)
	test.That(t, res.Distance, test.ShouldAlmostEqual, 2.0, 1e-6)
}

func TestGuessFromSimplexFallsBackOnEmptySimplex(t *testing.T) {
	var r Result
	g := r.GuessFromSimplex()
	test.That(t, g, test.ShouldResemble, r3.Vector{X: 1})
}

func TestGuessFromSimplexIsOppositeTheCentroid(t *testing.T) {
	r := Result{Simplex: Simplex{
		Verts: [4]Vertex{{W: r3.Vector{X: 2}}, {W: r3.Vector{X: 4}}},
		Count: 2,
	}}
	g := r.GuessFromSimplex()
	test.That(t, g.X, test.ShouldAlmostEqual, -3.0, 1e-9)
}

func TestConvergenceCriteriaAllAgreeOnSeparationDistance(t *testing.T) {
	b1 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{}), r3.Vector{X: 1, Y: 1, Z: 1})
	b2 := spatial.NewBox(spatial.NewPoseFromPoint(r3.Vector{X: 3}), r3.Vector{X: 1, Y: 1, Z: 1})

	for _, crit := range []ConvergenceCriterion{ConvergenceDefault, ConvergenceAbsolute, ConvergenceRelative} {
		adapter := minkowski.New(b1, b2)
		cfg := DefaultConfig()
		cfg.Convergence = crit
		res := Solve(adapter, r3.Vector{X: 1}, cfg)
		test.That(t, res.Distance, test.ShouldAlmostEqual, 2.0, 1e-5)
	}
}

func TestSimplexContainsDeduplicatesVertices(t *testing.T) {
	var s Simplex
	s.Add(Vertex{W: r3.Vector{X: 1, Y: 2, Z: 3}})
	test.That(t, s.Contains(r3.Vector{X: 1, Y: 2, Z: 3}), test.ShouldBeTrue)
	test.That(t, s.Contains(r3.Vector{X: 1, Y: 2, Z: 3.1}), test.ShouldBeFalse)
}

func TestStatusStringsAreDistinguishable(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range []Status{DidNotRun, Running, NoCollision, NoCollisionEarlyStopped, Collision, CollisionWithPenetrationInformation, Failed} {
		str := s.String()
		test.That(t, seen[str], test.ShouldBeFalse)
		seen[str] = true
	}
}
