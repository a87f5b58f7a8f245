package spatial

import (
	"math"

	"github.com/golang/geo/r3"
)

// HalfSpace is the infinite set of points on the negative side of a plane
// through the origin with the given local-frame normal, offset by Offset
// along that normal. It has no finite support in the general direction, so
// it never drives GJK itself — narrowphase solves half-space pairs
// analytically (spec.md §4.4's "half-space/plane vs X" specializations).
type HalfSpace struct {
	pose   Pose
	normal r3.Vector
	offset float64
}

// NewHalfSpace builds a HalfSpace whose boundary plane has the given
// local-frame unit normal and signed offset from the origin along it.
func NewHalfSpace(pose Pose, normal r3.Vector, offset float64) *HalfSpace {
	return &HalfSpace{pose: pose, normal: normal.Normalize(), offset: offset}
}

func (h *HalfSpace) Kind() Kind { return KindHalfSpace }

func (h *HalfSpace) Pose() Pose { return h.pose }

// Normal returns the half-space's local-frame unit normal.
func (h *HalfSpace) Normal() r3.Vector { return h.normal }

// Offset returns the half-space boundary's signed distance from the
// origin along Normal.
func (h *HalfSpace) Offset() float64 { return h.offset }

// WorldNormal returns the half-space's normal in world space.
func (h *HalfSpace) WorldNormal() r3.Vector {
	return h.pose.Orientation().RotationMatrix().MulVec(h.normal)
}

// SignedDistanceToPoint returns the signed distance from pt (world space)
// to the half-space's boundary plane along its outward normal; negative
// means pt is inside the solid half-space.
func (h *HalfSpace) SignedDistanceToPoint(pt r3.Vector) float64 {
	n := h.WorldNormal()
	originOnPlane := h.pose.Point().Add(n.Mul(h.offset))
	return n.Dot(pt.Sub(originOnPlane))
}

// Support is unbounded in general but GJK never calls it directly: the
// half-space's own local support is implemented here as a point farClamp
// away from the boundary plane's point along d (when d does not point
// outward), or along d's in-plane part (when it does), clamped so the
// Minkowski difference stays numerically finite. narrowphase's analytic
// half-space specializations bypass this entirely.
func (h *HalfSpace) Support(d r3.Vector, hint int) (r3.Vector, int) {
	const farClamp = 1e6
	if d.Dot(h.normal) <= 0 {
		return h.normal.Mul(h.offset).Add(d.Normalize().Mul(farClamp)), 0
	}
	tangent := d.Sub(h.normal.Mul(d.Dot(h.normal)))
	if tangent.Norm() < 1e-12 {
		return h.normal.Mul(h.offset), 0
	}
	return h.normal.Mul(h.offset).Add(tangent.Normalize().Mul(farClamp)), 0
}

func (h *HalfSpace) SweptSphereRadius() float64 { return 0 }

func (h *HalfSpace) LocalAABB() AABB {
	const big = math.MaxFloat64 / 4
	return AABB{Min: r3.Vector{X: -big, Y: -big, Z: -big}, Max: r3.Vector{X: big, Y: big, Z: big}}
}
