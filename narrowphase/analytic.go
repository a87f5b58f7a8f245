package narrowphase

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/epa"
	"go.viam.com/collide/gjk"
	"go.viam.com/collide/spatial"
)

// TryAnalyticCollision attempts one of the closed-form specializations in
// analyticSeparation for the ordered pair (s1, s2) before narrowphase falls
// back to GJK/EPA. ok is false when no analytic path recognizes the pair,
// in which case the caller should continue with the general solve.
func TryAnalyticCollision(s1, s2 spatial.Shape, req CollisionRequest) (*CollisionResult, bool) {
	dist, n, w1, w2, ok := analyticSeparation(s1, s2)
	if !ok {
		return nil, false
	}
	dist = zeroIfSmall(dist)
	if dist > req.SecurityMargin {
		res := &CollisionResult{Status: gjk.NoCollision, IsCollision: false}
		if req.EnableDistanceLowerBound {
			res.DistanceLowerBound = dist
		}
		return res, true
	}
	return &CollisionResult{
		Status:           gjk.CollisionWithPenetrationInformation,
		IsCollision:      true,
		PenetrationDepth: -dist,
		Normal:           n,
		Witness1:         w1,
		Witness2:         w2,
		EPAStatus:        epa.Valid,
	}, true
}

// TryAnalyticDistance is TryAnalyticCollision's distance counterpart: it
// never runs EPA. A colliding pair is reported as Distance 0, or, when
// req.EnableSignedDistance is set, as the closed-form signed separation
// (negative on overlap).
func TryAnalyticDistance(s1, s2 spatial.Shape, req DistanceRequest) (*DistanceResult, bool) {
	dist, _, w1, w2, ok := analyticSeparation(s1, s2)
	if !ok {
		return nil, false
	}
	dist = zeroIfSmall(dist)
	status := gjk.NoCollision
	d := dist
	if dist <= 0 {
		status = gjk.Collision
		if !req.EnableSignedDistance {
			d = 0
		}
	}
	return &DistanceResult{
		Status:      status,
		Distance:    d,
		IsCollision: dist <= 0,
		Witness1:    w1,
		Witness2:    w2,
	}, true
}

// analyticSeparation dispatches on the concrete shape types of s1 and s2 and
// returns the closed-form pairs spec.md names as fast paths: sphere-sphere,
// sphere-box, sphere-capsule, sphere-cylinder, sphere-triangle,
// triangle-triangle, capsule-capsule, and any-shape-vs-half-space. dist is
// the signed surface separation (negative on overlap), normal points from
// s1 toward s2, and w1/
// w2 are witnesses on each shape's surface. ok is false for any pair none of
// these specializations cover.
func analyticSeparation(s1, s2 spatial.Shape) (dist float64, normal, w1, w2 r3.Vector, ok bool) {
	if h, isH := s2.(*spatial.HalfSpace); isH {
		if _, s1IsH := s1.(*spatial.HalfSpace); !s1IsH {
			d, n, wShape, wPlane := shapeHalfSpaceSeparation(s1, h)
			return d, n.Mul(-1), wShape, wPlane, true
		}
	}
	if h, isH := s1.(*spatial.HalfSpace); isH {
		if _, s2IsH := s2.(*spatial.HalfSpace); !s2IsH {
			d, n, wShape, wPlane := shapeHalfSpaceSeparation(s2, h)
			return d, n, wPlane, wShape, true
		}
	}

	switch a := s1.(type) {
	case *spatial.Sphere:
		switch b := s2.(type) {
		case *spatial.Sphere:
			d, n, p1, p2 := sphereSphereSeparation(a, b)
			return d, n, p1, p2, true
		case *spatial.Box:
			d, n, p1, p2 := sphereBoxSeparation(a, b)
			return d, n, p1, p2, true
		case *spatial.Capsule:
			d, n, p1, p2 := sphereCapsuleSeparation(a, b)
			return d, n, p1, p2, true
		case *spatial.Cylinder:
			d, n, p1, p2 := sphereCylinderSeparation(a, b)
			return d, n, p1, p2, true
		case *spatial.Triangle:
			d, n, p1, p2 := sphereTriangleSeparation(a, b)
			return d, n, p1, p2, true
		}
	case *spatial.Triangle:
		switch b := s2.(type) {
		case *spatial.Sphere:
			d, n, p2, p1 := sphereTriangleSeparation(b, a)
			return d, n.Mul(-1), p1, p2, true
		case *spatial.Triangle:
			d, n, p1, p2 := triangleTriangleSeparation(a, b)
			return d, n, p1, p2, true
		}
	case *spatial.Box:
		if b, isSphere := s2.(*spatial.Sphere); isSphere {
			d, n, p2, p1 := sphereBoxSeparation(b, a)
			return d, n.Mul(-1), p1, p2, true
		}
	case *spatial.Capsule:
		switch b := s2.(type) {
		case *spatial.Sphere:
			d, n, p2, p1 := sphereCapsuleSeparation(b, a)
			return d, n.Mul(-1), p1, p2, true
		case *spatial.Capsule:
			d, n, p1, p2 := capsuleCapsuleSeparation(a, b)
			return d, n, p1, p2, true
		}
	case *spatial.Cylinder:
		if b, isSphere := s2.(*spatial.Sphere); isSphere {
			d, n, p2, p1 := sphereCylinderSeparation(b, a)
			return d, n.Mul(-1), p1, p2, true
		}
	}
	return 0, r3.Vector{}, r3.Vector{}, r3.Vector{}, false
}

// unitOr returns v normalized, falling back to fallback when v is too short
// to normalize reliably (coincident centers, a degenerate pair, and so on).
func unitOr(v r3.Vector, fallback r3.Vector) r3.Vector {
	n := v.Norm()
	if n < 1e-12 {
		return fallback
	}
	return v.Mul(1 / n)
}

func sphereSphereSeparation(a, b *spatial.Sphere) (dist float64, normal, w1, w2 r3.Vector) {
	c1, c2 := a.Pose().Point(), b.Pose().Point()
	diff := c2.Sub(c1)
	n := unitOr(diff, r3.Vector{X: 1})
	dist = diff.Norm() - a.Radius() - b.Radius()
	w1 = c1.Add(n.Mul(a.Radius()))
	w2 = c2.Sub(n.Mul(b.Radius()))
	return dist, n, w1, w2
}

// closestPointOnBox returns the closest point to worldPt on box's core
// surface or interior, in world space.
func closestPointOnBox(b *spatial.Box, worldPt r3.Vector) r3.Vector {
	rm := b.Pose().Orientation().RotationMatrix()
	local := rm.Transpose().MulVec(worldPt.Sub(b.Pose().Point()))
	half := b.HalfSize()
	clamped := r3.Vector{
		X: clampAbs(local.X, half.X),
		Y: clampAbs(local.Y, half.Y),
		Z: clampAbs(local.Z, half.Z),
	}
	return b.Pose().Point().Add(rm.MulVec(clamped))
}

func clampAbs(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func sphereBoxSeparation(sp *spatial.Sphere, b *spatial.Box) (dist float64, normal, w1, w2 r3.Vector) {
	center := sp.Pose().Point()
	closest := closestPointOnBox(b, center)
	diff := closest.Sub(center)
	if d := diff.Norm(); d > 1e-9 {
		n := diff.Mul(1 / d)
		return d - sp.Radius(), n, center.Add(n.Mul(sp.Radius())), closest
	}

	// The sphere's center lies inside the box: fall back to the minimum
	// penetration axis, the same face-distance comparison SAT uses.
	rm := b.Pose().Orientation().RotationMatrix()
	local := rm.Transpose().MulVec(center.Sub(b.Pose().Point()))
	half := b.HalfSize()
	gaps := [3]float64{half.X - math.Abs(local.X), half.Y - math.Abs(local.Y), half.Z - math.Abs(local.Z)}
	axis, minGap := 0, gaps[0]
	for i := 1; i < 3; i++ {
		if gaps[i] < minGap {
			axis, minGap = i, gaps[i]
		}
	}
	localNormal := r3.Vector{}
	sign := 1.0
	switch axis {
	case 0:
		if local.X < 0 {
			sign = -1
		}
		localNormal = r3.Vector{X: sign}
	case 1:
		if local.Y < 0 {
			sign = -1
		}
		localNormal = r3.Vector{Y: sign}
	default:
		if local.Z < 0 {
			sign = -1
		}
		localNormal = r3.Vector{Z: sign}
	}
	n := rm.MulVec(localNormal)
	return -(minGap + sp.Radius()), n, center.Add(n.Mul(sp.Radius())), closestPointOnBox(b, center)
}

func sphereCapsuleSeparation(sp *spatial.Sphere, c *spatial.Capsule) (dist float64, normal, w1, w2 r3.Vector) {
	a0, a1 := c.Segment()
	center := sp.Pose().Point()
	closest := spatial.ClosestPointSegmentPoint(a0, a1, center)
	diff := closest.Sub(center)
	n := unitOr(diff, r3.Vector{X: 1})
	dist = diff.Norm() - sp.Radius() - c.Radius()
	w1 = center.Add(n.Mul(sp.Radius()))
	w2 = closest.Sub(n.Mul(c.Radius()))
	return dist, n, w1, w2
}

// closestPointOnCylinder returns the closest point to worldPt on cyl's core
// surface or interior, in world space.
func closestPointOnCylinder(cyl *spatial.Cylinder, worldPt r3.Vector) r3.Vector {
	rm := cyl.Pose().Orientation().RotationMatrix()
	local := rm.Transpose().MulVec(worldPt.Sub(cyl.Pose().Point()))
	z := clampAbs(local.Z, cyl.HalfHeight())
	radial := math.Hypot(local.X, local.Y)
	x, y := local.X, local.Y
	if radial > cyl.Radius() {
		scale := cyl.Radius() / radial
		x, y = x*scale, y*scale
	}
	return cyl.Pose().Point().Add(rm.MulVec(r3.Vector{X: x, Y: y, Z: z}))
}

func sphereCylinderSeparation(sp *spatial.Sphere, cyl *spatial.Cylinder) (dist float64, normal, w1, w2 r3.Vector) {
	center := sp.Pose().Point()
	closest := closestPointOnCylinder(cyl, center)
	diff := closest.Sub(center)
	n := unitOr(diff, r3.Vector{X: 1})
	dist = diff.Norm() - sp.Radius()
	w1 = center.Add(n.Mul(sp.Radius()))
	w2 = closest
	return dist, n, w1, w2
}

func sphereTriangleSeparation(sp *spatial.Sphere, tri *spatial.Triangle) (dist float64, normal, w1, w2 r3.Vector) {
	center := sp.Pose().Point()
	closest := tri.ClosestPointToPoint(center)
	diff := closest.Sub(center)
	n := unitOr(diff, tri.Normal())
	dist = diff.Norm() - sp.Radius()
	w1 = center.Add(n.Mul(sp.Radius()))
	w2 = closest
	return dist, n, w1, w2
}

// triangleTriangleSeparation computes exact separation between two
// zero-thickness triangles. Penetration depth is not well-defined for
// surfaces without a solid interior, so an intersecting pair is reported as
// touching (dist 0) at their shared contact point rather than with a
// recovered depth; disjoint pairs get the true closest points and distance.
func triangleTriangleSeparation(a, b *spatial.Triangle) (dist float64, normal, w1, w2 r3.Vector) {
	p1, p2, d := spatial.TriangleTriangleClosestPoints(a, b)
	if d > 0 {
		n := unitOr(p2.Sub(p1), a.Normal())
		return d, n, p1, p2
	}
	n := unitOr(a.Normal().Add(b.Normal()), a.Normal())
	return 0, n, p1, p2
}

func capsuleCapsuleSeparation(a, b *spatial.Capsule) (dist float64, normal, w1, w2 r3.Vector) {
	raw1, raw2 := spatial.CapsuleVsCapsuleWitnesses(a, b)
	diff := raw2.Sub(raw1)
	n := unitOr(diff, r3.Vector{X: 1})
	dist = diff.Norm() - a.Radius() - b.Radius()
	w1 = raw1.Add(n.Mul(a.Radius()))
	w2 = raw2.Sub(n.Mul(b.Radius()))
	return dist, n, w1, w2
}

// shapeHalfSpaceSeparation computes the exact separation between any convex
// shape with a proper Support function and a half-space: the shape's extreme
// point along the half-space's inward normal is, by convexity, the point of
// the shape closest to (or deepest past) the boundary plane. normal points
// outward from the half-space's solid, away from the plane toward the
// shape's side; wShape and wPlane are witnesses on the shape and the plane.
func shapeHalfSpaceSeparation(s spatial.Shape, h *spatial.HalfSpace) (dist float64, normal, wShape, wPlane r3.Vector) {
	n := h.WorldNormal()
	extreme, _ := spatial.WorldSupport(s, n.Mul(-1), 0)
	d := h.SignedDistanceToPoint(extreme)
	dist = d - s.SweptSphereRadius()
	wShape = extreme.Sub(n.Mul(s.SweptSphereRadius()))
	wPlane = extreme.Sub(n.Mul(d))
	return dist, n, wShape, wPlane
}
