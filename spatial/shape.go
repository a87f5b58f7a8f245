package spatial

import (
	"github.com/golang/geo/r3"
)

// Kind tags the concrete variant behind a Shape, used by narrowphase's
// analytic fast paths to decide whether a pair can be solved without
// falling back to GJK/EPA.
type Kind int

// The shape variants spec.md's Data Model names. Deep inheritance on
// shapes was flagged for redesign (spec.md §9); Kind plus a flat Shape
// interface replaces a class hierarchy with a single dispatchable tag.
const (
	KindSphere Kind = iota
	KindBox
	KindCapsule
	KindCone
	KindCylinder
	KindEllipsoid
	KindHalfSpace
	KindPlane
	KindTriangle
	KindPolytope
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	case KindCapsule:
		return "capsule"
	case KindCone:
		return "cone"
	case KindCylinder:
		return "cylinder"
	case KindEllipsoid:
		return "ellipsoid"
	case KindHalfSpace:
		return "halfspace"
	case KindPlane:
		return "plane"
	case KindTriangle:
		return "triangle"
	case KindPolytope:
		return "polytope"
	default:
		return "unknown"
	}
}

// Shape is the single collaborator contract every convex primitive in this
// module satisfies. GJK/EPA only ever interact with a shape through Support
// and SweptSphereRadius; everything else (AABB/OBB, Kind) exists for
// coarse pruning and analytic dispatch.
type Shape interface {
	Kind() Kind
	Pose() Pose

	// Support returns the point on the shape's "core" (pre swept-sphere
	// inflation) farthest in direction d, in the shape's local frame, along
	// with an opaque hint a later call can pass back in to warm-start the
	// search over the same shape.
	Support(d r3.Vector, hint int) (point r3.Vector, newHint int)

	// SweptSphereRadius inflates the core shape's support by a constant
	// radius; GJK/EPA run against the un-inflated core and the radius is
	// subtracted from the resulting distance / added to the contact normal
	// offset as a final correction, never during the iteration itself.
	SweptSphereRadius() float64

	LocalAABB() AABB
}

// WorldSupport evaluates Support after transforming d into the shape's
// local frame and the result back into world space, the operation the
// Minkowski-difference adapter actually calls.
func WorldSupport(s Shape, worldDir r3.Vector, hint int) (r3.Vector, int) {
	rm := s.Pose().Orientation().RotationMatrix()
	localDir := rm.Transpose().MulVec(worldDir)
	localPt, newHint := s.Support(localDir, hint)
	worldPt := s.Pose().Point().Add(rm.MulVec(localPt))
	return worldPt, newHint
}

// WorldAABB returns s's AABB in world space by transforming its local AABB
// corners through its pose.
func WorldAABB(s Shape) AABB {
	local := s.LocalAABB()
	rm := s.Pose().Orientation().RotationMatrix()
	corners := [8]r3.Vector{
		{X: local.Min.X, Y: local.Min.Y, Z: local.Min.Z},
		{X: local.Min.X, Y: local.Min.Y, Z: local.Max.Z},
		{X: local.Min.X, Y: local.Max.Y, Z: local.Min.Z},
		{X: local.Min.X, Y: local.Max.Y, Z: local.Max.Z},
		{X: local.Max.X, Y: local.Min.Y, Z: local.Min.Z},
		{X: local.Max.X, Y: local.Min.Y, Z: local.Max.Z},
		{X: local.Max.X, Y: local.Max.Y, Z: local.Min.Z},
		{X: local.Max.X, Y: local.Max.Y, Z: local.Max.Z},
	}
	pts := make([]r3.Vector, 8)
	for i, c := range corners {
		pts[i] = s.Pose().Point().Add(rm.MulVec(c))
	}
	r := s.SweptSphereRadius()
	return AABBFromPoints(pts).Expanded(r)
}
