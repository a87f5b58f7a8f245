// Package bvh provides a minimal bounding-volume hierarchy over triangles: a
// Node contract any mesh consumer (here, octree-vs-mesh traversal) can walk,
// plus a reference median-split builder so that traversal is testable
// end-to-end without depending on an external mesh-processing library.
// Construction of a production BVH (surface-area heuristic, refitting,
// streaming builds) is an external collaborator; Build exists only to give
// octree-vs-mesh queries something real to descend in tests.
package bvh

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/spatial"
)

// leafSize is the triangle count at or below which Build stops splitting.
const leafSize = 4

// Node is one node of a binary BVH over triangles. Leaves carry their
// triangles directly; internal nodes carry only children. Min/Max bound
// every triangle in the node's subtree, in the mesh's local frame.
type Node struct {
	Min, Max  r3.Vector
	Triangles []*spatial.Triangle
	Left      *Node
	Right     *Node
}

// IsLeaf reports whether n carries triangles directly rather than children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Build constructs a BVH over triangles by recursively splitting along the
// longest axis of the current bounding box at the median centroid, the same
// top-down median-split strategy described for the octree-vs-mesh BV tree.
// Build returns nil for an empty triangle list.
func Build(triangles []*spatial.Triangle) *Node {
	if len(triangles) == 0 {
		return nil
	}
	min, max := computeTrianglesAABB(triangles)
	if len(triangles) <= leafSize {
		return &Node{Min: min, Max: max, Triangles: triangles}
	}

	axis := longestAxis(min, max)
	sorted := make([]*spatial.Triangle, len(triangles))
	copy(sorted, triangles)
	sort.Slice(sorted, func(i, j int) bool {
		return axisValue(sorted[i].Centroid(), axis) < axisValue(sorted[j].Centroid(), axis)
	})

	mid := len(sorted) / 2
	return &Node{
		Min:   min,
		Max:   max,
		Left:  Build(sorted[:mid]),
		Right: Build(sorted[mid:]),
	}
}

func computeTrianglesAABB(triangles []*spatial.Triangle) (r3.Vector, r3.Vector) {
	min := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, tri := range triangles {
		for _, p := range tri.Points() {
			min = r3.Vector{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y), Z: math.Min(min.Z, p.Z)}
			max = r3.Vector{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y), Z: math.Max(max.Z, p.Z)}
		}
	}
	return min, max
}

func longestAxis(min, max r3.Vector) int {
	ext := max.Sub(min)
	axis := 0
	longest := ext.X
	if ext.Y > longest {
		axis, longest = 1, ext.Y
	}
	if ext.Z > longest {
		axis = 2
	}
	return axis
}

func axisValue(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// aabbOverlap reports whether the two axis-aligned boxes overlap, touching
// faces counting as overlap.
func aabbOverlap(min1, max1, min2, max2 r3.Vector) bool {
	return min1.X <= max2.X && max1.X >= min2.X &&
		min1.Y <= max2.Y && max1.Y >= min2.Y &&
		min1.Z <= max2.Z && max1.Z >= min2.Z
}

// aabbDistance returns the Euclidean distance between the two boxes, 0 when
// they overlap.
func aabbDistance(min1, max1, min2, max2 r3.Vector) float64 {
	dx := axisGap(min1.X, max1.X, min2.X, max2.X)
	dy := axisGap(min1.Y, max1.Y, min2.Y, max2.Y)
	dz := axisGap(min1.Z, max1.Z, min2.Z, max2.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func axisGap(min1, max1, min2, max2 float64) float64 {
	if max1 < min2 {
		return min2 - max1
	}
	if max2 < min1 {
		return min1 - max2
	}
	return 0
}

// transformAABB returns the world-space AABB of the box [min,max] (expressed
// in pose's local frame) after applying pose.
func transformAABB(min, max r3.Vector, pose spatial.Pose) (r3.Vector, r3.Vector) {
	rm := pose.Orientation().RotationMatrix()
	corners := [8]r3.Vector{
		{X: min.X, Y: min.Y, Z: min.Z}, {X: min.X, Y: min.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: min.Z}, {X: min.X, Y: max.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: min.Z}, {X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: min.Z}, {X: max.X, Y: max.Y, Z: max.Z},
	}
	newMin := r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	newMax := r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, c := range corners {
		w := pose.Point().Add(rm.MulVec(c))
		newMin = r3.Vector{X: math.Min(newMin.X, w.X), Y: math.Min(newMin.Y, w.Y), Z: math.Min(newMin.Z, w.Z)}
		newMax = r3.Vector{X: math.Max(newMax.X, w.X), Y: math.Max(newMax.Y, w.Y), Z: math.Max(newMax.Z, w.Z)}
	}
	return newMin, newMax
}

// CollidesWithBVH recursively co-descends two BVHs, each posed in world
// space, short-circuiting on disjoint bounding boxes and falling back to
// exact triangle-triangle tests at matching leaves. buffer inflates the
// collision test, as spec.md's contact tolerance does elsewhere. It returns
// whether any pair is within buffer of touching, and the minimum
// world-space distance found along the way (+Inf if no finite bound was
// computed, e.g. when either tree is nil).
func CollidesWithBVH(a *Node, poseA spatial.Pose, b *Node, poseB spatial.Pose, buffer float64) (bool, float64) {
	if a == nil || b == nil {
		return false, math.Inf(1)
	}
	minA, maxA := transformAABB(a.Min, a.Max, poseA)
	minB, maxB := transformAABB(b.Min, b.Max, poseB)
	pad := r3.Vector{X: buffer, Y: buffer, Z: buffer}
	if !aabbOverlap(minA.Sub(pad), maxA.Add(pad), minB, maxB) {
		return false, aabbDistance(minA, maxA, minB, maxB)
	}

	if a.IsLeaf() && b.IsLeaf() {
		return leafCollidesWithLeaf(a.Triangles, poseA, b.Triangles, poseB, buffer)
	}
	if a.IsLeaf() {
		c1, d1 := CollidesWithBVH(a, poseA, b.Left, poseB, buffer)
		c2, d2 := CollidesWithBVH(a, poseA, b.Right, poseB, buffer)
		return c1 || c2, math.Min(d1, d2)
	}
	if b.IsLeaf() {
		c1, d1 := CollidesWithBVH(a.Left, poseA, b, poseB, buffer)
		c2, d2 := CollidesWithBVH(a.Right, poseA, b, poseB, buffer)
		return c1 || c2, math.Min(d1, d2)
	}
	c1, d1 := CollidesWithBVH(a.Left, poseA, b.Left, poseB, buffer)
	c2, d2 := CollidesWithBVH(a.Left, poseA, b.Right, poseB, buffer)
	c3, d3 := CollidesWithBVH(a.Right, poseA, b.Left, poseB, buffer)
	c4, d4 := CollidesWithBVH(a.Right, poseA, b.Right, poseB, buffer)
	return c1 || c2 || c3 || c4, math.Min(math.Min(d1, d2), math.Min(d3, d4))
}

// DistanceFromBVH is CollidesWithBVH's distance-only counterpart: it never
// tests exact intersection. It descends every pair of subtrees, with no
// AABB pruning and no ordering, and returns the minimum leaf-pair triangle
// distance found.
func DistanceFromBVH(a *Node, poseA spatial.Pose, b *Node, poseB spatial.Pose) float64 {
	if a == nil || b == nil {
		return math.Inf(1)
	}
	if a.IsLeaf() && b.IsLeaf() {
		return leafDistanceFromLeaf(a.Triangles, poseA, b.Triangles, poseB)
	}
	if a.IsLeaf() {
		return math.Min(DistanceFromBVH(a, poseA, b.Left, poseB), DistanceFromBVH(a, poseA, b.Right, poseB))
	}
	if b.IsLeaf() {
		return math.Min(DistanceFromBVH(a.Left, poseA, b, poseB), DistanceFromBVH(a.Right, poseA, b, poseB))
	}
	d1 := DistanceFromBVH(a.Left, poseA, b.Left, poseB)
	d2 := DistanceFromBVH(a.Left, poseA, b.Right, poseB)
	d3 := DistanceFromBVH(a.Right, poseA, b.Left, poseB)
	d4 := DistanceFromBVH(a.Right, poseA, b.Right, poseB)
	return math.Min(math.Min(d1, d2), math.Min(d3, d4))
}

func leafCollidesWithLeaf(tris1 []*spatial.Triangle, pose1 spatial.Pose, tris2 []*spatial.Triangle, pose2 spatial.Pose, buffer float64) (bool, float64) {
	best := math.Inf(1)
	for _, t1 := range tris1 {
		w1 := worldTriangle(t1, pose1)
		for _, t2 := range tris2 {
			w2 := worldTriangle(t2, pose2)
			d := triangleTriangleDistance(w1, w2)
			if d < best {
				best = d
			}
		}
	}
	return best <= buffer, best
}

func leafDistanceFromLeaf(tris1 []*spatial.Triangle, pose1 spatial.Pose, tris2 []*spatial.Triangle, pose2 spatial.Pose) float64 {
	best := math.Inf(1)
	for _, t1 := range tris1 {
		w1 := worldTriangle(t1, pose1)
		for _, t2 := range tris2 {
			w2 := worldTriangle(t2, pose2)
			if d := triangleTriangleDistance(w1, w2); d < best {
				best = d
			}
		}
	}
	return best
}

// worldTriangle returns a copy of tri transformed by pose; a Triangle
// carries no pose of its own (spatial.Triangle.Pose is the identity), so a
// posed triangle is a fresh Triangle over the transformed points.
func worldTriangle(tri *spatial.Triangle, pose spatial.Pose) *spatial.Triangle {
	pts := tri.Points()
	rm := pose.Orientation().RotationMatrix()
	transformed := make([]r3.Vector, 3)
	for i, p := range pts {
		transformed[i] = pose.Point().Add(rm.MulVec(p))
	}
	return spatial.NewTriangle(transformed[0], transformed[1], transformed[2])
}
