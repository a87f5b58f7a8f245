package spatial

import (
	"github.com/golang/geo/r3"
)

// Capsule is a line segment of the given half-length along its local Z
// axis, swept by a radius. Because the radius is carried entirely as
// SweptSphereRadius, a Capsule's core support function reduces to the two
// endpoints of the segment.
type Capsule struct {
	pose       Pose
	halfLength float64
	radius     float64
}

// NewCapsule builds a Capsule of the given total length and radius,
// centered and oriented by pose (its axis is pose's local Z).
func NewCapsule(pose Pose, radius, length float64) *Capsule {
	return &Capsule{pose: pose, halfLength: length / 2, radius: radius}
}

func (c *Capsule) Kind() Kind { return KindCapsule }

func (c *Capsule) Pose() Pose { return c.pose }

// Radius returns the capsule's swept sphere radius.
func (c *Capsule) Radius() float64 { return c.radius }

// HalfLength returns half the capsule's segment length.
func (c *Capsule) HalfLength() float64 { return c.halfLength }

// Support for a capsule's core (a segment on the local Z axis) is whichever
// endpoint lies farther along d.
func (c *Capsule) Support(d r3.Vector, hint int) (r3.Vector, int) {
	if d.Z < 0 {
		return r3.Vector{Z: -c.halfLength}, 0
	}
	return r3.Vector{Z: c.halfLength}, 1
}

func (c *Capsule) SweptSphereRadius() float64 { return c.radius }

func (c *Capsule) LocalAABB() AABB {
	return AABB{Min: r3.Vector{Z: -c.halfLength}, Max: r3.Vector{Z: c.halfLength}}
}

// Segment returns the world-space endpoints of the capsule's core segment.
func (c *Capsule) Segment() (r3.Vector, r3.Vector) {
	rm := c.pose.Orientation().RotationMatrix()
	a := c.pose.Point().Add(rm.MulVec(r3.Vector{Z: -c.halfLength}))
	b := c.pose.Point().Add(rm.MulVec(r3.Vector{Z: c.halfLength}))
	return a, b
}

// CapsuleVsCapsuleWitnesses returns the closest points between two
// capsules' cores, before either radius is subtracted.
func CapsuleVsCapsuleWitnesses(a, b *Capsule) (r3.Vector, r3.Vector) {
	a0, a1 := a.Segment()
	b0, b1 := b.Segment()
	return ClosestPointsSegmentSegment(a0, a1, b0, b1)
}
