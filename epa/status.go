package epa

// Status records EPA's terminal state, mirroring spec.md §7's taxonomy:
// capacity exhaustion and geometric degeneracy are local/best-effort
// outcomes (kinds (b)/(c)), never surfaced as a Go error.
type Status int

const (
	// DidNotRun is the zero value: Solve has not yet been called.
	DidNotRun Status = iota
	// Running is set internally while expansion is in flight; it never
	// escapes Solve.
	Running
	// Valid means the polytope converged to within Config.Tolerance of
	// the true penetration depth.
	Valid
	// AccuracyReached means the support point found for the closest face
	// was already a vertex of the polytope, so expansion could go no
	// further; that face is returned without Valid's tolerance guarantee.
	AccuracyReached
	// OutOfFaces means the face list grew past Config.MaxFaces, or
	// Config.MaxIterations ran out, before convergence; the best face
	// found so far is returned.
	OutOfFaces
	// OutOfVertices means Config.MaxVertices was reached before
	// convergence; the best face found so far is returned.
	OutOfVertices
	// Failed means expansion could not proceed at all: no live face was
	// left on the face heap to expand.
	Failed
	// Degenerated means a face with near-zero area was encountered and
	// could not be safely used to compute a plane distance.
	Degenerated
	// NonConvex means the initial tetrahedron from GJK was not a valid
	// simplex enclosing the origin (a contract violation from the GJK
	// stage, not a property of the shapes).
	NonConvex
	// InvalidHull means the seed polytope was degenerate (coplanar or
	// collinear points) and could not be expanded into a hull at all.
	InvalidHull
)

func (s Status) String() string {
	switch s {
	case DidNotRun:
		return "DidNotRun"
	case Running:
		return "Running"
	case Valid:
		return "Valid"
	case AccuracyReached:
		return "AccuracyReached"
	case OutOfFaces:
		return "OutOfFaces"
	case OutOfVertices:
		return "OutOfVertices"
	case Failed:
		return "Failed"
	case Degenerated:
		return "Degenerated"
	case NonConvex:
		return "NonConvex"
	case InvalidHull:
		return "InvalidHull"
	default:
		return "Unknown"
	}
}
