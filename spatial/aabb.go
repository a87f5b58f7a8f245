package spatial

import (
	"math"

	"github.com/golang/geo/r3"
)

// AABB is an axis-aligned bounding box, the coarse pruning collaborator
// spec.md's octree traversal uses to decide whether two subtrees can
// possibly interact before paying for a narrow-phase query.
type AABB struct {
	Min, Max r3.Vector
}

// NewAABB builds an AABB from corner points, normalizing min/max per axis.
func NewAABB(a, b r3.Vector) AABB {
	return AABB{
		Min: r3.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		Max: r3.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)},
	}
}

// AABBFromPoints returns the smallest AABB enclosing pts.
func AABBFromPoints(pts []r3.Vector) AABB {
	if len(pts) == 0 {
		return AABB{}
	}
	min, max := pts[0], pts[0]
	for _, p := range pts[1:] {
		min = r3.Vector{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y), Z: math.Min(min.Z, p.Z)}
		max = r3.Vector{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y), Z: math.Max(max.Z, p.Z)}
	}
	return AABB{Min: min, Max: max}
}

// Center returns the centroid of the box.
func (b AABB) Center() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// HalfExtents returns half the box's dimensions along each axis.
func (b AABB) HalfExtents() r3.Vector {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Expanded returns b grown by margin on every side, used to fold a swept
// sphere radius into coarse pruning.
func (b AABB) Expanded(margin float64) AABB {
	m := r3.Vector{X: margin, Y: margin, Z: margin}
	return AABB{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// Union returns the smallest AABB containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: r3.Vector{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y), Z: math.Min(a.Min.Z, b.Min.Z)},
		Max: r3.Vector{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y), Z: math.Max(a.Max.Z, b.Max.Z)},
	}
}

// Overlaps reports whether a and b intersect, including touching faces.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether pt lies within a, inclusive of the boundary.
func (a AABB) Contains(pt r3.Vector) bool {
	return pt.X >= a.Min.X && pt.X <= a.Max.X &&
		pt.Y >= a.Min.Y && pt.Y <= a.Max.Y &&
		pt.Z >= a.Min.Z && pt.Z <= a.Max.Z
}

// DistanceLowerBound returns a valid lower bound on the distance between
// any point in a and any point in b — zero if they overlap. Octree
// traversal prunes a branch once this bound exceeds the best distance
// found so far.
func (a AABB) DistanceLowerBound(b AABB) float64 {
	dx := math.Max(0, math.Max(a.Min.X-b.Max.X, b.Min.X-a.Max.X))
	dy := math.Max(0, math.Max(a.Min.Y-b.Max.Y, b.Min.Y-a.Max.Y))
	dz := math.Max(0, math.Max(a.Min.Z-b.Max.Z, b.Min.Z-a.Max.Z))
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ClosestPoint returns the point in a closest to pt.
func (a AABB) ClosestPoint(pt r3.Vector) r3.Vector {
	return r3.Vector{
		X: math.Min(math.Max(pt.X, a.Min.X), a.Max.X),
		Y: math.Min(math.Max(pt.Y, a.Min.Y), a.Max.Y),
		Z: math.Min(math.Max(pt.Z, a.Min.Z), a.Max.Z),
	}
}

// Octant returns the sub-box of a occupied by octree child index i, under
// the bit convention axis k is "high" in child i iff (i>>k)&1 == 1.
func (a AABB) Octant(i int) AABB {
	c := a.Center()
	min, max := a.Min, a.Max
	if (i>>0)&1 == 1 {
		min.X = c.X
	} else {
		max.X = c.X
	}
	if (i>>1)&1 == 1 {
		min.Y = c.Y
	} else {
		max.Y = c.Y
	}
	if (i>>2)&1 == 1 {
		min.Z = c.Z
	} else {
		max.Z = c.Z
	}
	return AABB{Min: min, Max: max}
}
