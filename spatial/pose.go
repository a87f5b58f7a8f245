package spatial

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid transform T = (R, t): a point in space together with an
// orientation, the collaborator spec.md's shapes and the Minkowski adapter
// are all expressed relative to.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

type pose struct {
	point       r3.Vector
	orientation Orientation
}

// NewPose builds a Pose from a point and an orientation.
func NewPose(point r3.Vector, o Orientation) Pose {
	if o == nil {
		o = NewZeroOrientation()
	}
	return &pose{point: point, orientation: o}
}

// NewPoseFromPoint builds a Pose with no rotation.
func NewPoseFromPoint(point r3.Vector) Pose {
	return &pose{point: point, orientation: NewZeroOrientation()}
}

// NewPoseFromOrientation builds a Pose at the origin with the given
// orientation.
func NewPoseFromOrientation(o Orientation) Pose {
	return &pose{point: r3.Vector{}, orientation: o}
}

// NewZeroPose returns the identity transform.
func NewZeroPose() Pose {
	return &pose{orientation: NewZeroOrientation()}
}

func (p *pose) Point() r3.Vector {
	return p.point
}

func (p *pose) Orientation() Orientation {
	return p.orientation
}

// Compose returns the pose equivalent to first applying b, then a — i.e.
// a point in b's frame is mapped into a's parent frame.
func Compose(a, b Pose) Pose {
	rot := QuatToRotationMatrix(a.Orientation().Quaternion())
	newPoint := a.Point().Add(rot.MulVec(b.Point()))
	newQuat := quat.Mul(a.Orientation().Quaternion(), b.Orientation().Quaternion())
	return NewPose(newPoint, NewOrientationFromQuaternion(newQuat))
}

// Invert returns the pose that undoes p.
func Invert(p Pose) Pose {
	invQuat := quat.Conj(p.Orientation().Quaternion())
	invRot := QuatToRotationMatrix(invQuat)
	invPoint := invRot.MulVec(p.Point()).Mul(-1)
	return NewPose(invPoint, NewOrientationFromQuaternion(invQuat))
}

// PoseBetween returns the pose that maps a onto b, i.e. Compose(a,
// PoseBetween(a,b)) == b.
func PoseBetween(a, b Pose) Pose {
	return Compose(Invert(a), b)
}

// Transform applies p to the point pt, expressed in p's parent frame.
func (p *pose) Transform(pt r3.Vector) r3.Vector {
	rot := QuatToRotationMatrix(p.orientation.Quaternion())
	return p.point.Add(rot.MulVec(pt))
}

// TransformPoint applies p to pt.
func TransformPoint(p Pose, pt r3.Vector) r3.Vector {
	rot := QuatToRotationMatrix(p.Orientation().Quaternion())
	return p.Point().Add(rot.MulVec(pt))
}

// PoseAlmostEqualEps reports whether a and b describe the same rigid
// transform to within eps on both point and orientation.
func PoseAlmostEqualEps(a, b Pose, eps float64) bool {
	if a.Point().Sub(b.Point()).Norm() > eps {
		return false
	}
	return QuaternionAlmostEqual(a.Orientation().Quaternion(), b.Orientation().Quaternion(), eps)
}

// PoseAlmostEqual is PoseAlmostEqualEps with a default tolerance.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, 1e-6)
}

// AlmostCoincident reports whether a and b have the same location, ignoring
// orientation — the positional half of the equivalence spec.md's witness
// consistency property checks.
func AlmostCoincident(a, b Pose) bool {
	return a.Point().Sub(b.Point()).Norm() < 1e-6
}

// RelativePose returns the rigid transform of b expressed in a's frame,
// matching the R12/t12 notation spec.md's minkowski adapter uses for the
// second shape's pose relative to the first.
func RelativePose(a, b Pose) (*RotationMatrix, r3.Vector) {
	invA := Invert(a)
	rel := Compose(invA, b)
	return QuatToRotationMatrix(rel.Orientation().Quaternion()), rel.Point()
}
