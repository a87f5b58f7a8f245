package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"
)

const angleEpsilon = 1e-8

// Orientation expresses the rotational component of a Pose in whichever
// parameterization a caller finds convenient. Every shape and transform in
// this package stores orientation as a quaternion internally; the other
// representations are computed on demand.
type Orientation interface {
	Quaternion() quat.Number
	RotationMatrix() *RotationMatrix
	AxisAngles() *R4AA
	EulerAngles() *EulerAngles
	OrientationVectorRadians() *OrientationVector
}

// quaternion is the concrete Orientation backing every Pose in this package.
type quaternion quat.Number

// NewZeroOrientation returns an orientation representing no rotation.
func NewZeroOrientation() Orientation {
	return &quaternion{Real: 1}
}

// NewOrientationFromQuaternion wraps q as an Orientation.
func NewOrientationFromQuaternion(q quat.Number) Orientation {
	qq := quaternion(q)
	return &qq
}

func (q *quaternion) Quaternion() quat.Number {
	return quat.Number(*q)
}

func (q *quaternion) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(quat.Number(*q))
}

func (q *quaternion) AxisAngles() *R4AA {
	return QuatToR4AA(quat.Number(*q))
}

func (q *quaternion) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(quat.Number(*q))
}

func (q *quaternion) OrientationVectorRadians() *OrientationVector {
	return QuatToOV(quat.Number(*q))
}

// QuaternionAlmostEqual reports whether q1 and q2 represent the same
// rotation to within eps, accounting for the double cover of SO(3) by unit
// quaternions (q and -q are the same rotation).
func QuaternionAlmostEqual(q1, q2 quat.Number, eps float64) bool {
	if quatNorm(quat.Sub(q1, q2)) < eps {
		return true
	}
	return quatNorm(quat.Add(q1, q2)) < eps
}

func quatNorm(q quat.Number) float64 {
	return math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// OrientationAlmostEqual reports whether o1 and o2 describe approximately
// the same rotation.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	return QuaternionAlmostEqual(o1.Quaternion(), o2.Quaternion(), 1e-5)
}

// OrientationBetween returns the orientation that rotates o1 into o2.
func OrientationBetween(o1, o2 Orientation) Orientation {
	q := quat.Mul(o2.Quaternion(), quat.Conj(o1.Quaternion()))
	return NewOrientationFromQuaternion(q)
}

// R4AA is an axis-angle representation: a rotation of Theta radians about
// the axis (RX, RY, RZ).
type R4AA struct {
	Theta      float64
	RX, RY, RZ float64
}

// NewR4AA returns the identity axis-angle (zero rotation about +Z).
func NewR4AA() *R4AA {
	return &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// ToQuat converts the axis-angle to a quaternion.
func (r *R4AA) ToQuat() quat.Number {
	n := math.Sqrt(r.RX*r.RX + r.RY*r.RY + r.RZ*r.RZ)
	if n < angleEpsilon {
		return quat.Number{Real: 1}
	}
	ax, ay, az := r.RX/n, r.RY/n, r.RZ/n
	s := math.Sin(r.Theta / 2)
	return quat.Number{
		Real: math.Cos(r.Theta / 2),
		Imag: ax * s,
		Jmag: ay * s,
		Kmag: az * s,
	}
}

// QuatToR4AA converts a unit quaternion to an axis-angle representation,
// the same way the C++ Eigen library's AngleAxis conversion does.
func QuatToR4AA(q quat.Number) *R4AA {
	denom := quatImagNorm(q)
	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}
	if denom < 1e-6 {
		return &R4AA{Theta: angle, RX: 1, RY: 0, RZ: 0}
	}
	return &R4AA{Theta: angle, RX: q.Imag / denom, RY: q.Jmag / denom, RZ: q.Kmag / denom}
}

// quatImagNorm returns the norm of the imaginary part of q.
func quatImagNorm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// EulerAngles is a roll/pitch/yaw rotation, in radians, composed as
// R = Rz(yaw) * Ry(pitch) * Rx(roll) (X, then Y, then Z about fixed axes).
type EulerAngles struct {
	Roll, Pitch, Yaw float64
}

// QuatToEulerAngles converts a unit quaternion to roll/pitch/yaw.
func QuatToEulerAngles(q quat.Number) *EulerAngles {
	m := QuatToRotationMatrix(q)
	sp := -m.At(2, 0)
	if sp > 1 {
		sp = 1
	} else if sp < -1 {
		sp = -1
	}
	pitch := math.Asin(sp)
	var roll, yaw float64
	if math.Abs(sp) < 1-1e-9 {
		roll = math.Atan2(m.At(2, 1), m.At(2, 2))
		yaw = math.Atan2(m.At(1, 0), m.At(0, 0))
	} else {
		// Gimbal lock: roll and yaw trade off; fix yaw to 0.
		roll = math.Atan2(-m.At(1, 2), m.At(1, 1))
		yaw = 0
	}
	return &EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}
}

// EulerAnglesToQuat converts roll/pitch/yaw to a quaternion via mgl64, the
// way the teacher builds rotation matrices from Euler angles for arm poses.
func EulerAnglesToQuat(e *EulerAngles) quat.Number {
	m := mgl64.AnglesToQuat(e.Yaw, e.Pitch, e.Roll, mgl64.ZYX)
	return quat.Number{Real: m.W, Imag: m.X(), Jmag: m.Y(), Kmag: m.Z()}
}

// OrientationVector is the teacher's signature orientation representation:
// OX, OY, OZ give the direction a reference +Z axis points after rotation,
// and Theta is the right-handed rotation about that resulting vector.
type OrientationVector struct {
	OX, OY, OZ float64
	Theta      float64
}

// OrientationVectorDegrees is OrientationVector with Theta in degrees.
type OrientationVectorDegrees struct {
	OX, OY, OZ float64
	Theta      float64
}

// QuatToOV converts a quaternion to an orientation vector: OX/OY/OZ is
// where the rotation sends the reference +Z axis, and Theta is the
// right-handed twist about that resulting axis relative to +X.
func QuatToOV(q quat.Number) *OrientationVector {
	xAxis := quat.Number{Imag: -1}
	zAxis := quat.Number{Kmag: 1}
	ov := &OrientationVector{}

	newX := quat.Mul(quat.Mul(q, xAxis), quat.Conj(q))
	newZ := quat.Mul(quat.Mul(q, zAxis), quat.Conj(q))
	ov.OX = newZ.Imag
	ov.OY = newZ.Jmag
	ov.OZ = newZ.Kmag

	if 1-math.Abs(newZ.Kmag) < angleEpsilon {
		ov.Theta = -math.Atan2(newX.Jmag, -newX.Imag)
		if newZ.Kmag < 0 {
			ov.Theta = -math.Atan2(newX.Jmag, newX.Imag)
		}
		return ov
	}

	v1 := mgl64.Vec3{newZ.Imag, newZ.Jmag, newZ.Kmag}
	v2 := mgl64.Vec3{newX.Imag, newX.Jmag, newX.Kmag}

	norm1 := v1.Cross(v2)
	norm2 := v1.Cross(mgl64.Vec3{zAxis.Imag, zAxis.Jmag, zAxis.Kmag})

	cosTheta := norm1.Dot(norm2) / (norm1.Len() * norm2.Len())
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}

	theta := math.Acos(cosTheta)
	if theta <= angleEpsilon {
		ov.Theta = 0
		return ov
	}

	aa := &R4AA{Theta: -theta, RX: ov.OX, RY: ov.OY, RZ: ov.OZ}
	q2 := aa.ToQuat()
	testZ := quat.Mul(quat.Mul(q2, zAxis), quat.Conj(q2))
	norm3 := v1.Cross(mgl64.Vec3{testZ.Imag, testZ.Jmag, testZ.Kmag})
	cosTest := norm1.Dot(norm3) / (norm1.Len() * norm3.Len())
	if 1-cosTest < angleEpsilon*angleEpsilon {
		ov.Theta = -theta
	} else {
		ov.Theta = theta
	}
	return ov
}

// ToQuat converts an orientation vector back to a quaternion: the shortest
// rotation taking +Z to (OX,OY,OZ), composed with Theta about that axis.
func (ov *OrientationVector) ToQuat() quat.Number {
	target := mgl64.Vec3{ov.OX, ov.OY, ov.OZ}
	n := target.Len()
	if n < angleEpsilon {
		target = mgl64.Vec3{0, 0, 1}
	} else {
		target = target.Mul(1 / n)
	}
	align := quatBetweenVectors(mgl64.Vec3{0, 0, 1}, target)
	twist := (&R4AA{Theta: ov.Theta, RX: target[0], RY: target[1], RZ: target[2]}).ToQuat()
	return quat.Mul(twist, align)
}

// Degrees converts ov to the degrees-flavored representation.
func (ov *OrientationVector) Degrees() *OrientationVectorDegrees {
	return &OrientationVectorDegrees{
		OX: ov.OX, OY: ov.OY, OZ: ov.OZ,
		Theta: ov.Theta * 180 / math.Pi,
	}
}

// Radians converts ovd back to the radians-flavored representation.
func (ovd *OrientationVectorDegrees) Radians() *OrientationVector {
	return &OrientationVector{
		OX: ovd.OX, OY: ovd.OY, OZ: ovd.OZ,
		Theta: ovd.Theta * math.Pi / 180,
	}
}

func quatBetweenVectors(a, b mgl64.Vec3) quat.Number {
	dot := a.Dot(b)
	if dot > 1-1e-12 {
		return quat.Number{Real: 1}
	}
	if dot < -1+1e-12 {
		ortho := mgl64.Vec3{1, 0, 0}.Cross(a)
		if ortho.Len() < angleEpsilon {
			ortho = mgl64.Vec3{0, 1, 0}.Cross(a)
		}
		ortho = ortho.Normalize()
		return quat.Number{Real: 0, Imag: ortho[0], Jmag: ortho[1], Kmag: ortho[2]}
	}
	axis := a.Cross(b)
	w := 1 + dot
	q := quat.Number{Real: w, Imag: axis[0], Jmag: axis[1], Kmag: axis[2]}
	return quat.Scale(1/quatNorm(q), q)
}
