package spatial

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a row-major 3x3 orthonormal rotation matrix. It is the
// concrete "3x3 rotation ... split" collaborator spec.md ties to the
// rigid-transform type.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix builds a RotationMatrix from 9 row-major entries.
func NewRotationMatrix(vals [9]float64) *RotationMatrix {
	return &RotationMatrix{mat: vals}
}

// IdentityRotationMatrix returns the identity rotation.
func IdentityRotationMatrix() *RotationMatrix {
	return &RotationMatrix{mat: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// Row returns the i'th row of the matrix as a vector.
func (rm *RotationMatrix) Row(i int) r3.Vector {
	return r3.Vector{X: rm.mat[3*i], Y: rm.mat[3*i+1], Z: rm.mat[3*i+2]}
}

// At returns the element at row i, column j.
func (rm *RotationMatrix) At(i, j int) float64 {
	return rm.mat[3*i+j]
}

// MulVec rotates v by this matrix.
func (rm *RotationMatrix) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.mat[0]*v.X + rm.mat[1]*v.Y + rm.mat[2]*v.Z,
		Y: rm.mat[3]*v.X + rm.mat[4]*v.Y + rm.mat[5]*v.Z,
		Z: rm.mat[6]*v.X + rm.mat[7]*v.Y + rm.mat[8]*v.Z,
	}
}

// Transpose returns the transpose of rm, which for an orthonormal matrix is
// also its inverse.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	return &RotationMatrix{mat: [9]float64{
		rm.mat[0], rm.mat[3], rm.mat[6],
		rm.mat[1], rm.mat[4], rm.mat[7],
		rm.mat[2], rm.mat[5], rm.mat[8],
	}}
}

// MulMatrix composes rm and other (rm applied after other, i.e. rm*other).
func (rm *RotationMatrix) MulMatrix(other *RotationMatrix) *RotationMatrix {
	var out [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += rm.At(i, k) * other.At(k, j)
			}
			out[3*i+j] = sum
		}
	}
	return &RotationMatrix{mat: out}
}

// IsOrthonormal reports whether rm is orthonormal to the given tolerance,
// the invariant spec.md §3 requires of R in SO(3).
func (rm *RotationMatrix) IsOrthonormal(tol float64) bool {
	prod := rm.MulMatrix(rm.Transpose())
	id := IdentityRotationMatrix()
	for i := 0; i < 9; i++ {
		if math.Abs(prod.mat[i]-id.mat[i]) > tol {
			return false
		}
	}
	return true
}

// Quaternion converts the rotation matrix to a unit quaternion using
// Shepperd's method.
func (rm *RotationMatrix) Quaternion() quat.Number {
	m00, m01, m02 := rm.mat[0], rm.mat[1], rm.mat[2]
	m10, m11, m12 := rm.mat[3], rm.mat[4], rm.mat[5]
	m20, m21, m22 := rm.mat[6], rm.mat[7], rm.mat[8]

	tr := m00 + m11 + m22
	var w, x, y, z float64
	switch {
	case tr > 0:
		s := 0.5 / math.Sqrt(tr+1.0)
		w = 0.25 / s
		x = (m21 - m12) * s
		y = (m02 - m20) * s
		z = (m10 - m01) * s
	case m00 > m11 && m00 > m22:
		s := 2.0 * math.Sqrt(1.0+m00-m11-m22)
		w = (m21 - m12) / s
		x = 0.25 * s
		y = (m01 + m10) / s
		z = (m02 + m20) / s
	case m11 > m22:
		s := 2.0 * math.Sqrt(1.0+m11-m00-m22)
		w = (m02 - m20) / s
		x = (m01 + m10) / s
		y = 0.25 * s
		z = (m12 + m21) / s
	default:
		s := 2.0 * math.Sqrt(1.0+m22-m00-m11)
		w = (m10 - m01) / s
		x = (m02 + m20) / s
		y = (m12 + m21) / s
		z = 0.25 * s
	}
	return quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// QuatToRotationMatrix converts a unit quaternion to a rotation matrix.
func QuatToRotationMatrix(q quat.Number) *RotationMatrix {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	n := math.Sqrt(w*w + x*x + y*y + z*z)
	if n > 1e-15 {
		w, x, y, z = w/n, x/n, y/n, z/n
	}
	return &RotationMatrix{mat: [9]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w),
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w),
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y),
	}}
}
