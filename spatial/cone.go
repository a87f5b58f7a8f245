package spatial

import (
	"math"

	"github.com/golang/geo/r3"
)

// Cone is a right circular cone whose axis runs along local Z, base at
// -halfH and apex at +halfH.
type Cone struct {
	pose   Pose
	radius float64
	halfH  float64
}

// NewCone builds a Cone of the given base radius and total height,
// centered and oriented by pose.
func NewCone(pose Pose, radius, height float64) *Cone {
	return &Cone{pose: pose, radius: radius, halfH: height / 2}
}

func (c *Cone) Kind() Kind { return KindCone }

func (c *Cone) Pose() Pose { return c.pose }

// Radius returns the cone's base radius.
func (c *Cone) Radius() float64 { return c.radius }

// HalfHeight returns half the cone's height.
func (c *Cone) HalfHeight() float64 { return c.halfH }

// Support compares the apex against the farthest point on the base rim
// along d and returns whichever is farther.
func (c *Cone) Support(d r3.Vector, hint int) (r3.Vector, int) {
	apex := r3.Vector{Z: c.halfH}
	apexDot := d.Dot(apex)

	radial := math.Hypot(d.X, d.Y)
	var rimPt r3.Vector
	if radial < 1e-12 {
		rimPt = r3.Vector{X: c.radius, Z: -c.halfH}
	} else {
		scale := c.radius / radial
		rimPt = r3.Vector{X: d.X * scale, Y: d.Y * scale, Z: -c.halfH}
	}
	rimDot := d.Dot(rimPt)

	if apexDot >= rimDot {
		return apex, 0
	}
	return rimPt, 1
}

func (c *Cone) SweptSphereRadius() float64 { return 0 }

func (c *Cone) LocalAABB() AABB {
	return AABB{
		Min: r3.Vector{X: -c.radius, Y: -c.radius, Z: -c.halfH},
		Max: r3.Vector{X: c.radius, Y: c.radius, Z: c.halfH},
	}
}
