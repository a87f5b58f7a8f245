package spatial

import (
	"github.com/golang/geo/r3"
)

// Ellipsoid is an axis-aligned (in its own local frame) ellipsoid with
// semi-axes Radii.
type Ellipsoid struct {
	pose  Pose
	radii r3.Vector
}

// NewEllipsoid builds an Ellipsoid with the given semi-axis lengths,
// centered and oriented by pose.
func NewEllipsoid(pose Pose, radii r3.Vector) *Ellipsoid {
	return &Ellipsoid{pose: pose, radii: radii}
}

func (e *Ellipsoid) Kind() Kind { return KindEllipsoid }

func (e *Ellipsoid) Pose() Pose { return e.pose }

// Radii returns the ellipsoid's three semi-axis lengths.
func (e *Ellipsoid) Radii() r3.Vector { return e.radii }

// Support for an ellipsoid with semi-axes (a,b,c): maximizing d.p over the
// unit sphere rescaled by (a,b,c) gives p = (a^2 dx, b^2 dy, c^2 dz) / n,
// where n = ||(a dx, b dy, c dz)||, by Cauchy-Schwarz.
func (e *Ellipsoid) Support(d r3.Vector, hint int) (r3.Vector, int) {
	scaled := r3.Vector{X: e.radii.X * d.X, Y: e.radii.Y * d.Y, Z: e.radii.Z * d.Z}
	n := scaled.Norm()
	if n < 1e-15 {
		return r3.Vector{X: e.radii.X}, 0
	}
	return r3.Vector{
		X: e.radii.X * scaled.X / n,
		Y: e.radii.Y * scaled.Y / n,
		Z: e.radii.Z * scaled.Z / n,
	}, 0
}

func (e *Ellipsoid) SweptSphereRadius() float64 { return 0 }

func (e *Ellipsoid) LocalAABB() AABB {
	return AABB{Min: e.radii.Mul(-1), Max: e.radii}
}
