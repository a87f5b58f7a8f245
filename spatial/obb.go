package spatial

import (
	"github.com/golang/geo/r3"
)

// OBB is an oriented bounding box: a box extent paired with a full rigid
// pose rather than axis alignment. It is the tighter of the two coarse
// collaborators spec.md's octree traversal may use to prune a branch before
// falling back to narrow phase.
type OBB struct {
	Pose        Pose
	HalfExtents r3.Vector
}

// NewOBB builds an OBB centered and oriented by pose with the given half
// extents along its local axes.
func NewOBB(pose Pose, halfExtents r3.Vector) OBB {
	return OBB{Pose: pose, HalfExtents: halfExtents}
}

// Overlaps reports whether a and b intersect, using Ericson's 15-axis
// separating axis test over their relative rotation.
func (a OBB) Overlaps(b OBB) bool {
	return a.MaxGap(b) <= 0
}

// MaxGap returns the maximum separation across all 15 SAT axes: positive
// means the boxes are separated by at least that distance, non-positive
// means they overlap, and its magnitude is then the overlap along the SAT
// axis of least penetration.
func (a OBB) MaxGap(b OBB) float64 {
	rmA := a.Pose.Orientation().RotationMatrix()
	rmB := b.Pose.Orientation().RotationMatrix()
	cd := b.Pose.Point().Sub(a.Pose.Point())

	var input [27]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			input[3*i+j] = rmA.At(i, j)
			input[9+3*i+j] = rmB.At(i, j)
		}
	}
	input[18], input[19], input[20] = a.HalfExtents.X, a.HalfExtents.Y, a.HalfExtents.Z
	input[21], input[22], input[23] = b.HalfExtents.X, b.HalfExtents.Y, b.HalfExtents.Z
	input[24], input[25], input[26] = cd.X, cd.Y, cd.Z

	return obbSATMaxGap(&input)
}

// ToAABB returns the smallest axis-aligned box enclosing o, used when a
// traversal needs the cheaper axis-aligned overlap test instead.
func (o OBB) ToAABB() AABB {
	rm := o.Pose.Orientation().RotationMatrix()
	var corners [8]r3.Vector
	idx := 0
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				local := r3.Vector{X: sx * o.HalfExtents.X, Y: sy * o.HalfExtents.Y, Z: sz * o.HalfExtents.Z}
				corners[idx] = o.Pose.Point().Add(rm.MulVec(local))
				idx++
			}
		}
	}
	return AABBFromPoints(corners[:])
}

// Vertices returns the 8 corners of o in world space.
func (o OBB) Vertices() [8]r3.Vector {
	rm := o.Pose.Orientation().RotationMatrix()
	var out [8]r3.Vector
	idx := 0
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				local := r3.Vector{X: sx * o.HalfExtents.X, Y: sy * o.HalfExtents.Y, Z: sz * o.HalfExtents.Z}
				out[idx] = o.Pose.Point().Add(rm.MulVec(local))
				idx++
			}
		}
	}
	return out
}
