package spatial

import (
	"math"

	"github.com/golang/geo/r3"
)

// TriangleTriangleOverlap follows Moller's 1997 fast triangle-triangle
// intersection test: reject early when one triangle lies entirely to one
// side of the other's plane, otherwise intersect each triangle's crossing
// segment against the line the two planes meet along and check the two
// resulting intervals overlap. When they do, point is a point common to
// both triangles' surfaces, picked as the midpoint of the overlapping
// interval along that line.
func TriangleTriangleOverlap(a, b *Triangle) (point r3.Vector, intersects bool) {
	const eps = 1e-9

	av, bv := a.Points(), b.Points()
	n1 := a.Normal()
	if n1.Norm2() < eps {
		return r3.Vector{}, false
	}
	d1 := -n1.Dot(av[0])
	db := [3]float64{n1.Dot(bv[0]) + d1, n1.Dot(bv[1]) + d1, n1.Dot(bv[2]) + d1}
	snapZero(&db, eps)
	if sameSignNonZero(db[0], db[1], db[2]) {
		return r3.Vector{}, false
	}

	n2 := b.Normal()
	if n2.Norm2() < eps {
		return r3.Vector{}, false
	}
	d2 := -n2.Dot(bv[0])
	da := [3]float64{n2.Dot(av[0]) + d2, n2.Dot(av[1]) + d2, n2.Dot(av[2]) + d2}
	snapZero(&da, eps)
	if sameSignNonZero(da[0], da[1], da[2]) {
		return r3.Vector{}, false
	}

	d := n1.Cross(n2)
	if d.Norm2() < eps {
		return coplanarContactPoint(a, b, n1)
	}

	aP0, aP1 := triangleCrossingSegment(av, da)
	bP0, bP1 := triangleCrossingSegment(bv, db)

	aLo, aHi := orderByProjection(d, aP0, aP1)
	bLo, bHi := orderByProjection(d, bP0, bP1)

	lo, loPoint := aLo.t, aLo.p
	if bLo.t > lo {
		lo, loPoint = bLo.t, bLo.p
	}
	hi, hiPoint := aHi.t, aHi.p
	if bHi.t < hi {
		hi, hiPoint = bHi.t, bHi.p
	}
	if lo > hi {
		return r3.Vector{}, false
	}
	return loPoint.Add(hiPoint).Mul(0.5), true
}

type projectedPoint struct {
	t float64
	p r3.Vector
}

// orderByProjection returns p0 and p1 ordered so lo.t <= hi.t, where t is
// each point's projection onto dir.
func orderByProjection(dir, p0, p1 r3.Vector) (lo, hi projectedPoint) {
	t0, t1 := dir.Dot(p0), dir.Dot(p1)
	if t0 <= t1 {
		return projectedPoint{t0, p0}, projectedPoint{t1, p1}
	}
	return projectedPoint{t1, p1}, projectedPoint{t0, p0}
}

// TriangleTriangleIntersect is TriangleTriangleOverlap without the contact
// point, for callers that only need the boolean.
func TriangleTriangleIntersect(a, b *Triangle) bool {
	_, ok := TriangleTriangleOverlap(a, b)
	return ok
}

// TriangleTriangleClosestPoints returns the closest pair of points between a
// and b, one on each triangle's surface, and their distance. Distance is 0
// and the two points coincide when the triangles intersect.
func TriangleTriangleClosestPoints(a, b *Triangle) (p1, p2 r3.Vector, dist float64) {
	if pt, ok := TriangleTriangleOverlap(a, b); ok {
		return pt, pt, 0
	}

	av, bv := a.Points(), b.Points()
	aEdges := [3][2]r3.Vector{{av[0], av[1]}, {av[1], av[2]}, {av[2], av[0]}}
	bEdges := [3][2]r3.Vector{{bv[0], bv[1]}, {bv[1], bv[2]}, {bv[2], bv[0]}}

	best := math.Inf(1)
	var bestP1, bestP2 r3.Vector
	for _, ea := range aEdges {
		for _, eb := range bEdges {
			q1, q2 := ClosestPointsSegmentSegment(ea[0], ea[1], eb[0], eb[1])
			if d := q1.Sub(q2).Norm(); d < best {
				best, bestP1, bestP2 = d, q1, q2
			}
		}
	}
	for _, v := range av {
		q := b.ClosestPointToPoint(v)
		if d := v.Sub(q).Norm(); d < best {
			best, bestP1, bestP2 = d, v, q
		}
	}
	for _, v := range bv {
		q := a.ClosestPointToPoint(v)
		if d := v.Sub(q).Norm(); d < best {
			best, bestP1, bestP2 = d, q, v
		}
	}
	return bestP1, bestP2, best
}

func snapZero(d *[3]float64, eps float64) {
	for i, v := range d {
		if math.Abs(v) < eps {
			d[i] = 0
		}
	}
}

func sameSignNonZero(x, y, z float64) bool {
	return (x > 0 && y > 0 && z > 0) || (x < 0 && y < 0 && z < 0)
}

// triangleCrossingSegment returns the two points where verts' triangle
// crosses the plane whose signed distances to verts are d: the edge from the
// isolated-sign vertex to each of the other two, linearly interpolated to
// the zero crossing.
func triangleCrossingSegment(verts []r3.Vector, d [3]float64) (r3.Vector, r3.Vector) {
	i, j, k := 0, 1, 2
	switch isolatedVertex(d) {
	case 1:
		i, j, k = 1, 0, 2
	case 2:
		i, j, k = 2, 0, 1
	}
	return lerpToZero(verts[i], verts[j], d[i], d[j]), lerpToZero(verts[i], verts[k], d[i], d[k])
}

// isolatedVertex returns the index of the vertex whose signed distance has a
// different sign (or is zero while the others are not) from the other two.
func isolatedVertex(d [3]float64) int {
	sign := func(v float64) int {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		default:
			return 0
		}
	}
	s0, s1, s2 := sign(d[0]), sign(d[1]), sign(d[2])
	if s0 == s1 {
		return 2
	}
	if s0 == s2 {
		return 1
	}
	return 0
}

func lerpToZero(from, to r3.Vector, dFrom, dTo float64) r3.Vector {
	if dFrom == dTo {
		return from
	}
	t := dFrom / (dFrom - dTo)
	return from.Add(to.Sub(from).Mul(t))
}

// coplanarContactPoint handles the degenerate case where both triangles lie
// in (nearly) the same plane: project onto the two axes spanning the plane
// and fall back to a 2D containment/edge-intersection test, recovering a 3D
// point from whichever 2D test first succeeds.
func coplanarContactPoint(a, b *Triangle, normal r3.Vector) (r3.Vector, bool) {
	u, v := planeBasis(normal)
	proj := func(p r3.Vector) [2]float64 { return [2]float64{p.Dot(u), p.Dot(v)} }

	av, bv := a.Points(), b.Points()
	pa := [3][2]float64{proj(av[0]), proj(av[1]), proj(av[2])}
	pb := [3][2]float64{proj(bv[0]), proj(bv[1]), proj(bv[2])}

	for i, p := range pb {
		if pointInTriangle2D(p, pa) {
			return bv[i], true
		}
	}
	for i, p := range pa {
		if pointInTriangle2D(p, pb) {
			return av[i], true
		}
	}

	aEdges3D := [3][2]r3.Vector{{av[0], av[1]}, {av[1], av[2]}, {av[2], av[0]}}
	aEdges2D := [3][2][2]float64{{pa[0], pa[1]}, {pa[1], pa[2]}, {pa[2], pa[0]}}
	bEdges2D := [3][2][2]float64{{pb[0], pb[1]}, {pb[1], pb[2]}, {pb[2], pb[0]}}
	for i, ea := range aEdges2D {
		for _, eb := range bEdges2D {
			if t, ok := segments2DIntersection(ea[0], ea[1], eb[0], eb[1]); ok {
				p0, p1 := aEdges3D[i][0], aEdges3D[i][1]
				return p0.Add(p1.Sub(p0).Mul(t)), true
			}
		}
	}
	return r3.Vector{}, false
}

func planeBasis(n r3.Vector) (r3.Vector, r3.Vector) {
	ref := r3.Vector{X: 1}
	if math.Abs(n.X) > 0.9 {
		ref = r3.Vector{Y: 1}
	}
	u := n.Cross(ref).Normalize()
	w := n.Cross(u)
	return u, w
}

func pointInTriangle2D(p [2]float64, tri [3][2]float64) bool {
	sign := func(p1, p2, p3 [2]float64) float64 {
		return (p1[0]-p3[0])*(p2[1]-p3[1]) - (p2[0]-p3[0])*(p1[1]-p3[1])
	}
	d1 := sign(p, tri[0], tri[1])
	d2 := sign(p, tri[1], tri[2])
	d3 := sign(p, tri[2], tri[0])
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// segments2DIntersection returns the parameter t along (p1,p2) at which it
// crosses (p3,p4), when the two segments actually intersect.
func segments2DIntersection(p1, p2, p3, p4 [2]float64) (t float64, ok bool) {
	rx, ry := p2[0]-p1[0], p2[1]-p1[1]
	sx, sy := p4[0]-p3[0], p4[1]-p3[1]
	denom := rx*sy - ry*sx
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	qpx, qpy := p3[0]-p1[0], p3[1]-p1[1]
	t = (qpx*sy - qpy*sx) / denom
	u := (qpx*ry - qpy*rx) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
