package spatial

import (
	"math"

	"github.com/golang/geo/r3"
)

// Triangle is a single triangle, the leaf primitive of a Mesh and the unit
// a BVH indexes. Its vertices are stored directly in the frame its owner
// uses (world space, or a Mesh's local frame), not relative to a pose of
// its own, since meshes are typically static once built and re-posing
// per-triangle would be wasteful.
type Triangle struct {
	p0, p1, p2 r3.Vector
	normal     r3.Vector
}

// NewTriangle builds a Triangle from three vertices in right-hand winding
// order.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{
		p0:     p0,
		p1:     p1,
		p2:     p2,
		normal: PlaneNormal(p0, p1, p2),
	}
}

func (t *Triangle) Kind() Kind { return KindTriangle }

// Pose returns the identity pose: triangle vertices are already expressed
// in their owner's frame, so no further transform applies.
func (t *Triangle) Pose() Pose { return NewZeroPose() }

// Support returns whichever vertex lies farthest along d.
func (t *Triangle) Support(d r3.Vector, hint int) (r3.Vector, int) {
	best, bestIdx := t.p0, 0
	bestDot := d.Dot(t.p0)
	if v := d.Dot(t.p1); v > bestDot {
		best, bestIdx, bestDot = t.p1, 1, v
	}
	if v := d.Dot(t.p2); v > bestDot {
		best, bestIdx = t.p2, 2
	}
	return best, bestIdx
}

func (t *Triangle) SweptSphereRadius() float64 { return 0 }

func (t *Triangle) LocalAABB() AABB {
	return AABBFromPoints([]r3.Vector{t.p0, t.p1, t.p2})
}

// ClosestPointToCoplanarPoint returns the closest point on the triangle to
// pt, which must already lie in the triangle's plane.
func (t *Triangle) ClosestPointToCoplanarPoint(pt r3.Vector) r3.Vector {
	c0 := pt.Sub(t.p0).Cross(t.p1.Sub(t.p0))
	c1 := pt.Sub(t.p1).Cross(t.p2.Sub(t.p1))
	c2 := pt.Sub(t.p2).Cross(t.p0.Sub(t.p2))
	inside := c0.Dot(t.normal) <= 0 && c1.Dot(t.normal) <= 0 && c2.Dot(t.normal) <= 0

	if inside {
		return pt
	}

	refPt := ClosestPointSegmentPoint(t.p0, t.p1, pt)
	bestDist := pt.Sub(refPt).Norm2()

	point2 := ClosestPointSegmentPoint(t.p1, t.p2, pt)
	if distsq := pt.Sub(point2).Norm2(); distsq < bestDist {
		refPt = point2
		bestDist = distsq
	}

	point3 := ClosestPointSegmentPoint(t.p2, t.p0, pt)
	if distsq := pt.Sub(point3).Norm2(); distsq < bestDist {
		return point3
	}
	return refPt
}

// ClosestPointToPoint returns the closest point on the triangle to an
// arbitrary point, not necessarily coplanar.
func (t *Triangle) ClosestPointToPoint(point r3.Vector) r3.Vector {
	closestPtInside, inside := t.ClosestInsidePoint(point)
	if inside {
		return closestPtInside
	}

	closestPt := ClosestPointSegmentPoint(t.p0, t.p1, point)
	bestDist := point.Sub(closestPt).Norm2()

	newPt := ClosestPointSegmentPoint(t.p1, t.p2, point)
	if newDist := point.Sub(newPt).Norm2(); newDist < bestDist {
		closestPt = newPt
		bestDist = newDist
	}

	newPt = ClosestPointSegmentPoint(t.p2, t.p0, point)
	if newDist := point.Sub(newPt).Norm2(); newDist < bestDist {
		return newPt
	}
	return closestPt
}

// ClosestInsidePoint returns the closest point on the triangle's plane to
// point, and whether that point's projection actually lies inside the
// triangle (as opposed to outside, where an edge would be closer).
func (t *Triangle) ClosestInsidePoint(point r3.Vector) (r3.Vector, bool) {
	const eps = 1e-6

	e0 := t.p1.Sub(t.p0)
	e1 := t.p2.Sub(t.p0)
	a := e0.Norm2()
	b := e0.Dot(e1)
	c := e1.Norm2()
	d := point.Sub(t.p0)
	det := a*c - b*b
	u := (c*e0.Dot(d) - b*e1.Dot(d)) / det
	v := (-b*e0.Dot(d) + a*e1.Dot(d)) / det
	inside := (0 <= u+eps) && (u <= 1+eps) && (0 <= v+eps) && (v <= 1+eps) && (u+v <= 1+eps)
	return t.p0.Add(e0.Mul(u)).Add(e1.Mul(v)), inside
}

// Points returns the triangle's three vertices.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Normal returns the triangle's unit face normal.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// Centroid returns the triangle's geometric center, the point bvh's
// median-split builder sorts triangles by along the tree's chosen axis.
func (t *Triangle) Centroid() r3.Vector {
	return t.p0.Add(t.p1).Add(t.p2).Mul(1.0 / 3.0)
}

// IntersectsPlane reports whether the triangle crosses, or lies on, the
// plane through planePt with normal planeNormal.
func (t *Triangle) IntersectsPlane(planePt, planeNormal r3.Vector) bool {
	d0 := planeNormal.Dot(t.p0.Sub(planePt))
	d1 := planeNormal.Dot(t.p1.Sub(planePt))
	d2 := planeNormal.Dot(t.p2.Sub(planePt))

	if (d0 > floatEpsilon && d1 > floatEpsilon && d2 > floatEpsilon) ||
		(d0 < -floatEpsilon && d1 < -floatEpsilon && d2 < -floatEpsilon) {
		return false
	}
	return true
}

// TrianglePlaneIntersectingSegment returns the segment along which the
// triangle crosses the plane through planePt with normal planeNormal.
func (t *Triangle) TrianglePlaneIntersectingSegment(planePt, planeNormal r3.Vector) (r3.Vector, r3.Vector, bool) {
	if !t.IntersectsPlane(planePt, planeNormal) {
		return r3.Vector{}, r3.Vector{}, false
	}

	d0 := planeNormal.Dot(t.p0.Sub(planePt))
	d1 := planeNormal.Dot(t.p1.Sub(planePt))
	d2 := planeNormal.Dot(t.p2.Sub(planePt))

	if math.Abs(d0) < floatEpsilon && math.Abs(d1) < floatEpsilon && math.Abs(d2) < floatEpsilon {
		e1 := t.p1.Sub(t.p0).Norm2()
		e2 := t.p2.Sub(t.p1).Norm2()
		e3 := t.p0.Sub(t.p2).Norm2()
		if e1 >= e2 && e1 >= e3 {
			return t.p0, t.p1, true
		} else if e2 >= e1 && e2 >= e3 {
			return t.p1, t.p2, true
		}
		return t.p2, t.p0, true
	}

	var intersections []r3.Vector
	edges := [][2]r3.Vector{
		{t.p0, t.p1},
		{t.p1, t.p2},
		{t.p2, t.p0},
	}
	dists := []float64{d0, d1, d2}

	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		if (dists[i] * dists[j]) < 0 {
			frac := dists[i] / (dists[i] - dists[j])
			edge := edges[i]
			intersection := edge[0].Add(edge[1].Sub(edge[0]).Mul(frac))
			intersections = append(intersections, intersection)
		} else if math.Abs(dists[i]) < floatEpsilon {
			intersections = append(intersections, edges[i][0])
		}
	}

	if len(intersections) < 2 {
		return intersections[0], intersections[0], true
	}
	return intersections[0], intersections[1], true
}
