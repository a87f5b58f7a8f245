package spatial

import (
	"math"

	"github.com/golang/geo/r3"
)

// Cylinder is a right circular cylinder with its axis along local Z.
type Cylinder struct {
	pose   Pose
	radius float64
	halfH  float64
}

// NewCylinder builds a Cylinder of the given radius and total height,
// centered and oriented by pose.
func NewCylinder(pose Pose, radius, height float64) *Cylinder {
	return &Cylinder{pose: pose, radius: radius, halfH: height / 2}
}

func (c *Cylinder) Kind() Kind { return KindCylinder }

func (c *Cylinder) Pose() Pose { return c.pose }

// Radius returns the cylinder's radius.
func (c *Cylinder) Radius() float64 { return c.radius }

// HalfHeight returns half the cylinder's height.
func (c *Cylinder) HalfHeight() float64 { return c.halfH }

// Support returns the farthest point on the cylinder's disc-capped core
// along d: pick the top or bottom cap by the sign of d.Z, then the
// farthest point on that cap's circle in the direction of d's radial
// component.
func (c *Cylinder) Support(d r3.Vector, hint int) (r3.Vector, int) {
	z := c.halfH
	if d.Z < 0 {
		z = -c.halfH
	}
	radial := math.Hypot(d.X, d.Y)
	if radial < 1e-12 {
		return r3.Vector{Z: z}, 0
	}
	scale := c.radius / radial
	return r3.Vector{X: d.X * scale, Y: d.Y * scale, Z: z}, 0
}

func (c *Cylinder) SweptSphereRadius() float64 { return 0 }

func (c *Cylinder) LocalAABB() AABB {
	return AABB{
		Min: r3.Vector{X: -c.radius, Y: -c.radius, Z: -c.halfH},
		Max: r3.Vector{X: c.radius, Y: c.radius, Z: c.halfH},
	}
}
