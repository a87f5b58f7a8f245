package gjk

// Status records the terminal state of a GJK run, mirroring the status
// enum spec.md's error handling design requires: local/best-effort
// outcomes are distinguished from fatal contract violations by type, never
// smuggled through a plain error.
type Status int

const (
	// DidNotRun is the zero value: Solve has not yet been called.
	DidNotRun Status = iota
	// Running is set internally while the iteration loop is in flight; it
	// never escapes Solve.
	Running
	// NoCollision means the simplex converged to the true closest points
	// and the shapes do not overlap.
	NoCollision
	// NoCollisionEarlyStopped means Solve proved the shapes are separated
	// by more than Config.DistanceUpperBound before the simplex fully
	// converged to the true closest point — the returned distance is a
	// valid lower bound, not necessarily the exact distance, per spec.md
	// §4.2's "distance_upper_bound" early-termination rule.
	NoCollisionEarlyStopped
	// Collision means the origin was enclosed by the simplex: the shapes
	// overlap, but no penetration depth was requested or computed.
	Collision
	// CollisionWithPenetrationInformation means the origin was enclosed
	// and EPA was run to recover a penetration depth and contact normal.
	CollisionWithPenetrationInformation
	// Failed means Solve exhausted Config.MaxIterations without reaching
	// either convergence predicate — a best-effort result (the last
	// simplex's closest point and witnesses) is still returned, per
	// spec.md §7 kind (a).
	Failed
)

func (s Status) String() string {
	switch s {
	case DidNotRun:
		return "DidNotRun"
	case Running:
		return "Running"
	case NoCollision:
		return "NoCollision"
	case NoCollisionEarlyStopped:
		return "NoCollisionEarlyStopped"
	case Collision:
		return "Collision"
	case CollisionWithPenetrationInformation:
		return "CollisionWithPenetrationInformation"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// ConvergenceCriterion selects how Solve decides it has made enough
// progress to stop, the three modes original_source/'s GJK offers.
type ConvergenceCriterion int

const (
	// ConvergenceDefault stops once the support improvement in the search
	// direction falls below Config.Tolerance, scaled by the larger of 1
	// and the norm of the current search direction (the current distance
	// estimate).
	ConvergenceDefault ConvergenceCriterion = iota
	// ConvergenceAbsolute stops once the raw support improvement falls
	// below Config.Tolerance, regardless of simplex scale.
	ConvergenceAbsolute
	// ConvergenceRelative stops once the support improvement falls below
	// Config.Tolerance times the larger of 1 and the magnitude of the
	// current best distance.
	ConvergenceRelative
)

// Variant mirrors original_source/'s GJKVariant enum (VariantDefault /
// VariantPolytope). In the original, the two differ in how a degenerate
// simplex face is reduced mid-iteration; in this core, EPA always
// bootstraps its polytope directly from GJK's terminal tetrahedron (see
// epa.Solve), which is what VariantPolytope names, so both values produce
// identical Solve behavior here. The field is still accepted on Config so
// a caller migrating a request built against the original's enum does not
// need to special-case this core.
type Variant int

const (
	// VariantDefault is the zero value and original_source/'s default.
	VariantDefault Variant = iota
	// VariantPolytope is accepted for API compatibility; see the type
	// comment for why it does not change Solve's behavior here.
	VariantPolytope
)
