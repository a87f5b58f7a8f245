package bvh

import (
	"go.viam.com/collide/spatial"
)

// triangleTriangleDistance returns the minimum Euclidean distance between
// a and b, 0 whenever they intersect.
func triangleTriangleDistance(a, b *spatial.Triangle) float64 {
	_, _, dist := spatial.TriangleTriangleClosestPoints(a, b)
	return dist
}

// triangleTriangleIntersect reports whether a and b intersect.
func triangleTriangleIntersect(a, b *spatial.Triangle) bool {
	return spatial.TriangleTriangleIntersect(a, b)
}
