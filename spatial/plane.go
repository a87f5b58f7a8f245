package spatial

import (
	"github.com/golang/geo/r3"
)

// Plane is the infinitely thin two-sided counterpart to HalfSpace, used
// where a query needs signed distance to a flat boundary without treating
// either side as solid (e.g. triangle-plane intersection in mesh
// traversal).
type Plane struct {
	pose   Pose
	normal r3.Vector
}

// NewPlane builds a Plane through pose's point with the given local-frame
// unit normal.
func NewPlane(pose Pose, normal r3.Vector) *Plane {
	return &Plane{pose: pose, normal: normal.Normalize()}
}

func (p *Plane) Kind() Kind { return KindPlane }

func (p *Plane) Pose() Pose { return p.pose }

// Normal returns the plane's local-frame unit normal.
func (p *Plane) Normal() r3.Vector { return p.normal }

// WorldNormal returns the plane's normal in world space.
func (p *Plane) WorldNormal() r3.Vector {
	return p.pose.Orientation().RotationMatrix().MulVec(p.normal)
}

// SignedDistanceToPoint returns the signed distance from pt to the plane
// along its world-space normal.
func (p *Plane) SignedDistanceToPoint(pt r3.Vector) float64 {
	return p.WorldNormal().Dot(pt.Sub(p.pose.Point()))
}

// ProjectPoint returns the closest point on the plane to pt.
func (p *Plane) ProjectPoint(pt r3.Vector) r3.Vector {
	n := p.WorldNormal()
	return pt.Sub(n.Mul(p.SignedDistanceToPoint(pt)))
}
