package spatial

import (
	"github.com/golang/geo/r3"
)

// boxNormals is the ordered list of a box's face normals in its local
// frame, reused both for the Support function and the SAT fast path.
var boxNormals = [6]r3.Vector{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: -1, Y: 0, Z: 0},
	{X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: -1},
}

// Box is a 3D rectangular prism, fully defined by a pose and a half size
// along each local axis.
type Box struct {
	pose              Pose
	halfSize          r3.Vector
	sweptSphereRadius float64
}

// NewBox instantiates a Box with the given full dimensions.
func NewBox(pose Pose, dims r3.Vector) *Box {
	return &Box{pose: pose, halfSize: dims.Mul(0.5)}
}

// NewRoundedBox instantiates a Box whose core is inset by radius on every
// face, recovering the original dims once the swept sphere is applied.
func NewRoundedBox(pose Pose, dims r3.Vector, radius float64) *Box {
	half := dims.Mul(0.5)
	return &Box{
		pose:              pose,
		halfSize:          r3.Vector{X: half.X - radius, Y: half.Y - radius, Z: half.Z - radius},
		sweptSphereRadius: radius,
	}
}

func (b *Box) Kind() Kind { return KindBox }

func (b *Box) Pose() Pose { return b.pose }

// HalfSize returns the box's local half extents.
func (b *Box) HalfSize() r3.Vector { return b.halfSize }

// Support returns the box vertex farthest along d, the per-axis-sign
// support function of an axis-aligned box in its own local frame.
func (b *Box) Support(d r3.Vector, hint int) (r3.Vector, int) {
	sx, sy, sz := 1.0, 1.0, 1.0
	if d.X < 0 {
		sx = -1
	}
	if d.Y < 0 {
		sy = -1
	}
	if d.Z < 0 {
		sz = -1
	}
	return r3.Vector{X: sx * b.halfSize.X, Y: sy * b.halfSize.Y, Z: sz * b.halfSize.Z}, 0
}

func (b *Box) SweptSphereRadius() float64 { return b.sweptSphereRadius }

func (b *Box) LocalAABB() AABB {
	return AABB{Min: b.halfSize.Mul(-1), Max: b.halfSize}
}

// Vertices returns the 8 corners of the box's core in world space.
func (b *Box) Vertices() [8]r3.Vector {
	rm := b.pose.Orientation().RotationMatrix()
	var out [8]r3.Vector
	idx := 0
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				local := r3.Vector{X: sx * b.halfSize.X, Y: sy * b.halfSize.Y, Z: sz * b.halfSize.Z}
				out[idx] = b.pose.Point().Add(rm.MulVec(local))
				idx++
			}
		}
	}
	return out
}

// OBB returns the oriented bounding box exactly bounding b's core (i.e.
// excluding the swept sphere radius).
func (b *Box) OBB() OBB {
	return NewOBB(b.pose, b.halfSize)
}

// BoxVsBoxSeparationLowerBound is the SAT fast path spec.md's component
// design calls out for box-box: a valid lower bound on the distance between
// a and b's cores, zero whenever the SAT gap test finds them interpenetrating
// (or can't prove otherwise), positive only when it proves separation. A
// caller comparing this against a collision margin can reject a box pair
// without ever invoking GJK/EPA.
func BoxVsBoxSeparationLowerBound(a, b *Box) float64 {
	gap := a.OBB().MaxGap(b.OBB())
	if gap <= 0 {
		return 0
	}
	return gap
}
