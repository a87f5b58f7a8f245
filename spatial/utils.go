// Package spatial provides the rigid-transform, bounding-volume and shape
// collaborators consumed by the narrow-phase collision core. It is
// deliberately thin: the algorithmic heart of the library lives in
// minkowski, gjk, epa, narrowphase and octree.
package spatial

import (
	"math"

	"github.com/golang/geo/r3"
)

// floatEpsilon is the default tolerance used for floating point comparisons
// throughout the spatial package.
const floatEpsilon = 1e-8

// Float64AlmostEqual reports whether a and b differ by no more than eps.
func Float64AlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// ClosestPointSegmentPoint returns the closest point on segment [a,b] to pt.
func ClosestPointSegmentPoint(a, b, pt r3.Vector) r3.Vector {
	ab := b.Sub(a)
	denom := ab.Norm2()
	if denom < 1e-30 {
		return a
	}
	t := pt.Sub(a).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Mul(t))
}

// ClosestPointsSegmentSegment returns the pair of closest points between the
// two segments.
func ClosestPointsSegmentSegment(p1, q1, p2, q2 r3.Vector) (r3.Vector, r3.Vector) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)

	a := d1.Norm2()
	e := d2.Norm2()
	f := d2.Dot(r)

	var s, t float64
	const eps = 1e-12

	if a <= eps && e <= eps {
		return p1, p2
	}
	if a <= eps {
		s = 0
		t = clamp01(f / e)
	} else {
		c := d1.Dot(r)
		if e <= eps {
			t = 0
			s = clamp01(-c / a)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom != 0 {
				s = clamp01((b*f - c*e) / denom)
			} else {
				s = 0
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clamp01(-c / a)
			} else if t > 1 {
				t = 1
				s = clamp01((b - c) / a)
			}
		}
	}
	c1 := p1.Add(d1.Mul(s))
	c2 := p2.Add(d2.Mul(t))
	return c1, c2
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PlaneNormal returns the (non-normalized direction, then normalized)
// normal of the plane through p0, p1, p2 using right-hand winding.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	norm := n.Norm()
	if norm < 1e-15 {
		return r3.Vector{}
	}
	return n.Mul(1 / norm)
}
