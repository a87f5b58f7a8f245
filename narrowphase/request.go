// Package narrowphase drives a GJK distance query (and, when shapes
// overlap, an EPA penetration query) for a single pair of spatial.Shape
// values, falling back to closed-form solutions for the pairs spec.md
// names as analytic fast paths.
package narrowphase

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/collide/epa"
	"go.viam.com/collide/gjk"
)

// SupportHint is a pair of warm-start vertex hints, one per shape,
// reproducing original_source/'s support_func_guess_t more precisely than
// a single opaque hint value.
type SupportHint struct {
	Hint1, Hint2 int
}

// CollisionRequest configures a single collision query.
type CollisionRequest struct {
	// EnableContact requests witness points and a contact normal in
	// addition to the boolean collision result.
	EnableContact bool
	// EnableDistanceLowerBound requests that a disjoint result also carry
	// a provable lower bound on separation in DistanceLowerBound, per
	// spec.md §6.
	EnableDistanceLowerBound bool
	// SecurityMargin, when positive, inflates collision reporting: a pair
	// separated by no more than SecurityMargin is reported as colliding
	// with PenetrationDepth recorded as negative (a gap, not an overlap),
	// per spec.md §6's "security_margin > 0 inflates collisions (report
	// contacts at separation <= margin)".
	SecurityMargin float64
	// BreakDistance is accepted for API parity with spec.md §6's request
	// shape but is not consumed inside this core: it governs when a
	// broad-phase collaborator should re-invoke a narrow-phase query on a
	// tracked pair, a concern spec.md §1 places outside this package.
	BreakDistance float64
	// DistanceUpperBound asks GJK to stop as soon as it proves separation
	// exceeds this value, returning gjk.NoCollisionEarlyStopped instead of
	// fully converging. Zero means unbounded. Ignored by analytic fast
	// paths, which are already O(1).
	DistanceUpperBound float64
	// GJKConfig tunes the GJK stage.
	GJKConfig gjk.Config
	// EPAConfig tunes the EPA stage, run only when GJK reports Collision
	// and EnableContact is set.
	EPAConfig epa.Config
	// InitialGuess seeds the first GJK search direction.
	InitialGuess r3.Vector
	// CachedSupportFuncGuess carries warm-start vertex hints from a prior
	// query against the same shape pair.
	CachedSupportFuncGuess SupportHint
}

// DefaultCollisionRequest returns a CollisionRequest with default tuning
// and contact reporting enabled.
func DefaultCollisionRequest() CollisionRequest {
	return CollisionRequest{
		EnableContact: true,
		GJKConfig:     gjk.DefaultConfig(),
		EPAConfig:     epa.DefaultConfig(),
		InitialGuess:  r3.Vector{X: 1},
	}
}

// DistanceRequest configures a single distance query. Distance never runs
// EPA unless EnableSignedDistance is set, in which case a colliding pair
// is reported as a negative distance (the penetration depth) rather than
// clamped to zero, per spec.md §6.
type DistanceRequest struct {
	// EnableNearestPoints requests Witness1/Witness2 be populated; when
	// false, callers only care about the scalar distance and the solve
	// may skip witness recovery work in a future optimization. Witnesses
	// are always correct when populated, so this is advisory only.
	EnableNearestPoints bool
	// EnableSignedDistance causes EPA to run when GJK reports Collision,
	// so Distance carries the negative penetration depth instead of 0.
	EnableSignedDistance bool
	// RelErr and AbsErr mirror original_source/'s distance request fields
	// of the same name: when AbsErr is positive it selects
	// gjk.ConvergenceAbsolute with that tolerance; otherwise, when RelErr
	// is positive it selects gjk.ConvergenceRelative. Neither overrides an
	// explicitly-configured GJKConfig.Convergence other than
	// gjk.ConvergenceDefault.
	RelErr, AbsErr         float64
	GJKConfig              gjk.Config
	EPAConfig              epa.Config
	InitialGuess           r3.Vector
	CachedSupportFuncGuess SupportHint
	GJKVariant             gjk.Variant
}

// DefaultDistanceRequest returns a DistanceRequest with default tuning.
func DefaultDistanceRequest() DistanceRequest {
	return DistanceRequest{
		EnableNearestPoints: true,
		GJKConfig:           gjk.DefaultConfig(),
		EPAConfig:           epa.DefaultConfig(),
		InitialGuess:        r3.Vector{X: 1},
	}
}

// CollisionResult is the outcome of a collision query.
type CollisionResult struct {
	Status           gjk.Status
	IsCollision      bool
	PenetrationDepth float64
	// DistanceLowerBound is populated whenever the request set
	// EnableDistanceLowerBound and the pair is not colliding: a proven
	// lower bound on separation, per spec.md §6. Zero and meaningless
	// otherwise.
	DistanceLowerBound float64
	// Normal points from shape 1 toward shape 2 along the separating
	// axis (or the minimum-penetration axis on collision). This is the
	// opposite sense from spec.md §4.2's "points from S2 to S1"; the
	// inversion is deliberate, matching adapter.Support's w1 - w2
	// convention (shape 1 minus shape 2) that the rest of this package's
	// GJK/EPA pipeline is built around. One general-path case differs:
	// when the cores are separated but lie within the combined
	// swept-sphere radius plus SecurityMargin, Normal is the unit vector
	// from Witness2 to Witness1, i.e. from shape 2 toward shape 1.
	Normal               r3.Vector
	Witness1, Witness2   r3.Vector
	NextSupportFuncGuess SupportHint
	// EPAStatus is epa.DidNotRun unless Status is
	// gjk.CollisionWithPenetrationInformation, in which case it records
	// EPA's own terminal state (Valid, AccuracyReached, or one of the
	// best-effort degeneracy/capacity kinds spec.md §7 names) — the
	// caller's only way to distinguish a fully converged penetration
	// result from a best-effort one.
	EPAStatus epa.Status
}

// DistanceResult is the outcome of a distance query. Distance is 0 when
// the shapes touch or overlap, unless the request set EnableSignedDistance,
// in which case an overlapping pair reports a negative distance (the
// penetration depth); IsCollision distinguishes "touching" from
// "genuinely separated by a positive margin".
type DistanceResult struct {
	Status               gjk.Status
	Distance             float64
	IsCollision          bool
	Witness1, Witness2   r3.Vector
	NextSupportFuncGuess SupportHint
}

// ErrContractViolation is wrapped around fatal, never-ran style errors —
// kind (d)/(e) in spec.md §7 — as opposed to the typed Status enums GJK
// and EPA return for local/best-effort outcomes.
var ErrContractViolation = errors.New("narrowphase: contract violation")
