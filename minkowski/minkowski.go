// Package minkowski adapts a pair of spatial.Shape values into the single
// combined support function GJK and EPA iterate against, without ever
// materializing the Minkowski difference itself.
package minkowski

import (
	"github.com/golang/geo/r3"

	"go.viam.com/collide/spatial"
)

// Adapter holds the relative transform between two shapes and exposes the
// combined support function sigma_S1(d) - R12 * sigma_S2(-R12^T d) - t12,
// evaluated entirely in shape 1's local frame so the hot loop in gjk/epa
// never has to round-trip through world space.
type Adapter struct {
	s1, s2 spatial.Shape

	// rel is shape 2's pose relative to shape 1's frame: R12, t12.
	rel12 *spatial.RotationMatrix
	t12   r3.Vector

	hint1, hint2 int
}

// New builds an Adapter for the ordered pair (s1, s2).
func New(s1, s2 spatial.Shape) *Adapter {
	rel12, t12 := spatial.RelativePose(s1.Pose(), s2.Pose())
	return &Adapter{s1: s1, s2: s2, rel12: rel12, t12: t12}
}

// NewRelative builds an Adapter from a relative transform the caller has
// already derived, skipping the spatial.RelativePose call New performs.
// This is the fast path for a caller solving the same s1 against many s2
// values that all share one relative placement — an octree leaf box
// against every triangle of a mesh leaf, for instance, where rel12/t12
// depend only on the box's pose and the mesh's pose, not on which
// triangle is being tested.
func NewRelative(s1, s2 spatial.Shape, rel12 *spatial.RotationMatrix, t12 r3.Vector) *Adapter {
	return &Adapter{s1: s1, s2: s2, rel12: rel12, t12: t12}
}

// SetHints seeds the warm-start vertex hints used by shapes whose Support
// hill-climbs an adjacency graph (e.g. spatial.Polytope).
func (a *Adapter) SetHints(h1, h2 int) {
	a.hint1, a.hint2 = h1, h2
}

// Hints returns the most recent support hints returned by each shape, the
// support_func_guess_t pair threaded back out to the caller as a
// narrowphase.SupportHint for the next query against the same pair.
func (a *Adapter) Hints() (int, int) {
	return a.hint1, a.hint2
}

// Support evaluates the combined support function for direction d,
// expressed in shape 1's local frame, returning both the Minkowski point w
// and its two witnesses w1 (on shape 1) and w2 (on shape 2), also in shape
// 1's local frame.
func (a *Adapter) Support(d r3.Vector) (w, w1, w2 r3.Vector) {
	w1, a.hint1 = a.s1.Support(d, a.hint1)

	dLocal2 := a.rel12.Transpose().MulVec(d.Mul(-1))
	p2, hint2 := a.s2.Support(dLocal2, a.hint2)
	a.hint2 = hint2
	w2 = a.rel12.MulVec(p2).Add(a.t12)

	return w1.Sub(w2), w1, w2
}

// CombinedSweptSphereRadius returns the sum of both shapes' swept sphere
// radii — the correction narrowphase subtracts from the core distance GJK
// converges to, and adds to the contact normal offset when shapes collide.
func (a *Adapter) CombinedSweptSphereRadius() float64 {
	return a.s1.SweptSphereRadius() + a.s2.SweptSphereRadius()
}

// ToWorld1 maps a point expressed in shape 1's local frame into world
// space, used to recover world-space witness points once GJK/EPA converge.
func (a *Adapter) ToWorld1(p r3.Vector) r3.Vector {
	rm := a.s1.Pose().Orientation().RotationMatrix()
	return a.s1.Pose().Point().Add(rm.MulVec(p))
}
