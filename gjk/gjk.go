// Package gjk implements the Gilbert-Johnson-Keerthi distance algorithm
// over the support function exposed by minkowski.Adapter: an iterative
// simplex search for the point of a convex set nearest the origin.
package gjk

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/minkowski"
)

// Config tunes a single Solve call.
type Config struct {
	MaxIterations int
	Tolerance     float64
	Convergence   ConvergenceCriterion
	Variant       Variant
	// DistanceUpperBound lets a caller who only cares whether shapes are
	// closer than some threshold stop GJK as soon as the current lower
	// bound on distance proves otherwise, per spec.md §4.2's
	// "distance_upper_bound" early-termination knob. DefaultConfig sets it
	// to +Inf ("no bound"); zero is treated the same way.
	DistanceUpperBound float64
}

// DefaultConfig returns the tuning GJK uses when a caller does not
// override it: 128 iterations and a relative tolerance of 1e-6, matching
// the defaults original_source/'s narrowphase_defaults.h ships.
func DefaultConfig() Config {
	return Config{
		MaxIterations:      128,
		Tolerance:          1e-6,
		Convergence:        ConvergenceDefault,
		Variant:            VariantDefault,
		DistanceUpperBound: math.Inf(1),
	}
}

// Result is GJK's terminal state: the status, the best distance found (0
// at or past Collision), witness points on each shape in shape 1's local
// frame, the terminal simplex (consumed by EPA's VariantPolytope
// bootstrap), and the iteration count.
type Result struct {
	Status     Status
	Distance   float64
	Witness1   r3.Vector
	Witness2   r3.Vector
	Simplex    Simplex
	Iterations int
}

// GuessFromSimplex derives a warm-start search direction for a subsequent
// query against the same shape pair from the current terminal simplex,
// reproducing original_source/'s GJK::getGuessFromSimplex rather than
// reusing the stale final direction verbatim.
func (r *Result) GuessFromSimplex() r3.Vector {
	if r.Simplex.Count == 0 {
		return r3.Vector{X: 1}
	}
	var centroid r3.Vector
	for i := 0; i < r.Simplex.Count; i++ {
		centroid = centroid.Add(r.Simplex.Verts[i].W)
	}
	centroid = centroid.Mul(1.0 / float64(r.Simplex.Count))
	if centroid.Norm2() < 1e-20 {
		return r3.Vector{X: 1}
	}
	return centroid.Mul(-1)
}

// Solve runs GJK over adapter's combined support function starting from
// initialGuess, returning the terminal Result. adapter's SetHints, if
// called beforehand, seeds the warm start for shapes whose Support
// hill-climbs an adjacency graph.
func Solve(adapter *minkowski.Adapter, initialGuess r3.Vector, cfg Config) *Result {
	d := initialGuess
	if d.Norm2() < 1e-20 {
		d = r3.Vector{X: 1}
	}

	upperBoundLimit := cfg.DistanceUpperBound
	if upperBoundLimit == 0 {
		upperBoundLimit = math.Inf(1)
	}

	var simplex Simplex
	bestLowerBound := 0.0

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		w, w1, w2 := adapter.Support(d)

		if simplex.Contains(w) {
			return terminal(simplex, d, iter, NoCollision)
		}

		// d.Norm() is a valid upper bound on the true distance once d is
		// itself a point of the Minkowski difference (every iteration
		// past the first, since d is then -closest(W) for a simplex W
		// whose convex hull lies inside the difference set). The caller's
		// initialGuess has no such guarantee, so iteration 0 skips the
		// support-plane convergence test and relies on simplex.Contains
		// or the tetrahedron/triangle/segment reduction below instead.
		//
		// -w.Dot(d)/|d| is the distance from the origin to the
		// supporting hyperplane {x : d.x = d.w}, which contains the
		// whole Minkowski difference on its d.x <= d.w side: whenever
		// that plane is already proven to be on the far side of the
		// origin (d.w < 0), its distance from the origin lower-bounds
		// the true separation. bestLowerBound keeps the largest such
		// bound seen so far.
		lower := -w.Dot(d) / d.Norm()
		if lower > bestLowerBound {
			bestLowerBound = lower
		}

		if iter > 0 {
			upper := d.Norm()
			if upper-bestLowerBound <= convergenceTolerance(cfg, d, upper) {
				simplex.Add(Vertex{W: w, W1: w1, W2: w2})
				return terminal(simplex, d, iter, NoCollision)
			}
		}
		if bestLowerBound >= upperBoundLimit {
			simplex.Add(Vertex{W: w, W1: w1, W2: w2})
			return terminalEarlyStopped(simplex, bestLowerBound, iter)
		}

		simplex.Add(Vertex{W: w, W1: w1, W2: w2})

		var closest r3.Vector
		var collided bool
		switch simplex.Count {
		case 1:
			closest = simplex.Verts[0].W
		case 2:
			var reduced Simplex
			reduced, closest = closestOnSegment(simplex.Verts[0], simplex.Verts[1])
			simplex = reduced
		case 3:
			var reduced Simplex
			reduced, closest = closestOnTriangle(simplex.Verts[0], simplex.Verts[1], simplex.Verts[2])
			simplex = reduced
		case 4:
			var reduced Simplex
			reduced, closest, collided = closestOnTetrahedron(
				simplex.Verts[0], simplex.Verts[1], simplex.Verts[2], simplex.Verts[3])
			simplex = reduced
		}

		if collided {
			return &Result{Status: Collision, Distance: 0, Simplex: simplex, Iterations: iter + 1}
		}
		if closest.Norm2() < 1e-20 {
			return &Result{Status: Collision, Distance: 0, Simplex: simplex, Iterations: iter + 1}
		}

		d = closest.Mul(-1)
	}

	// Iterations exhausted without convergence: best-effort per spec.md §7
	// kind (a), distinct from a proven separation past DistanceUpperBound.
	return terminal(simplex, d, cfg.MaxIterations, Failed)
}

// terminalEarlyStopped builds the Result for a run that stopped because the
// current lower bound on distance already exceeds Config.DistanceUpperBound
// — the shapes are proven farther apart than the caller cares about, even
// though the simplex has not fully converged to the true closest point.
// Distance is that lower bound; the witnesses come from the current
// simplex's closest point.
func terminalEarlyStopped(simplex Simplex, lowerBound float64, iter int) *Result {
	closest := simplex.Verts[simplex.Count-1].W
	switch simplex.Count {
	case 2:
		_, closest = closestOnSegment(simplex.Verts[0], simplex.Verts[1])
	case 3:
		_, closest = closestOnTriangle(simplex.Verts[0], simplex.Verts[1], simplex.Verts[2])
	case 4:
		_, closest, _ = closestOnTetrahedron(simplex.Verts[0], simplex.Verts[1], simplex.Verts[2], simplex.Verts[3])
	}
	w1, w2 := Witnesses(simplex, closest)
	return &Result{
		Status:     NoCollisionEarlyStopped,
		Distance:   lowerBound,
		Witness1:   w1,
		Witness2:   w2,
		Simplex:    simplex,
		Iterations: iter,
	}
}

func convergenceTolerance(cfg Config, d r3.Vector, upperBound float64) float64 {
	switch cfg.Convergence {
	case ConvergenceAbsolute:
		return cfg.Tolerance
	case ConvergenceRelative:
		return cfg.Tolerance * math.Max(1, math.Abs(upperBound))
	default:
		return cfg.Tolerance * math.Max(1, d.Norm())
	}
}

func terminal(simplex Simplex, d r3.Vector, iter int, status Status) *Result {
	var closest r3.Vector
	switch simplex.Count {
	case 1:
		closest = simplex.Verts[0].W
	case 2:
		_, closest = closestOnSegment(simplex.Verts[0], simplex.Verts[1])
	case 3:
		_, closest = closestOnTriangle(simplex.Verts[0], simplex.Verts[1], simplex.Verts[2])
	case 4:
		_, closest, _ = closestOnTetrahedron(simplex.Verts[0], simplex.Verts[1], simplex.Verts[2], simplex.Verts[3])
	default:
		closest = d.Mul(-1)
	}

	w1, w2 := Witnesses(simplex, closest)
	return &Result{
		Status:     status,
		Distance:   closest.Norm(),
		Witness1:   w1,
		Witness2:   w2,
		Simplex:    simplex,
		Iterations: iter,
	}
}
