package spatial

import (
	"github.com/golang/geo/r3"
)

// Sphere is a ball of the given radius about its pose's point. Its support
// function needs no iteration: every sphere-sphere, sphere-box and
// sphere-capsule pair is solved analytically by narrowphase without ever
// invoking GJK.
type Sphere struct {
	pose   Pose
	radius float64
}

// NewSphere builds a Sphere centered at pose with the given radius.
func NewSphere(pose Pose, radius float64) *Sphere {
	return &Sphere{pose: pose, radius: radius}
}

func (s *Sphere) Kind() Kind { return KindSphere }

func (s *Sphere) Pose() Pose { return s.pose }

// Radius returns the sphere's radius.
func (s *Sphere) Radius() float64 { return s.radius }

// Support for a sphere's core (a point) is always the origin; the radius
// is carried entirely as SweptSphereRadius.
func (s *Sphere) Support(d r3.Vector, hint int) (r3.Vector, int) {
	return r3.Vector{}, 0
}

func (s *Sphere) SweptSphereRadius() float64 { return s.radius }

func (s *Sphere) LocalAABB() AABB {
	return AABB{}
}
