package gjk

import "github.com/golang/geo/r3"

// Witnesses recovers the witness points on shape 1 and shape 2
// corresponding to a point p known to be an affine combination of s's
// Minkowski vertices (as closest-point-to-origin always produces). Because
// w = w1 - w2 is itself affine in the barycentric weights, the same
// weights applied to W1 and W2 give valid witnesses for p, without any
// extra geometric work.
func Witnesses(s Simplex, p r3.Vector) (w1, w2 r3.Vector) {
	switch s.Count {
	case 1:
		return s.Verts[0].W1, s.Verts[0].W2
	case 2:
		t := barycentricSegment(s.Verts[0].W, s.Verts[1].W, p)
		return lerp(s.Verts[0].W1, s.Verts[1].W1, t), lerp(s.Verts[0].W2, s.Verts[1].W2, t)
	case 3:
		u, v, w := barycentricTriangle(s.Verts[0].W, s.Verts[1].W, s.Verts[2].W, p)
		w1 = s.Verts[0].W1.Mul(u).Add(s.Verts[1].W1.Mul(v)).Add(s.Verts[2].W1.Mul(w))
		w2 = s.Verts[0].W2.Mul(u).Add(s.Verts[1].W2.Mul(v)).Add(s.Verts[2].W2.Mul(w))
		return w1, w2
	case 4:
		u, v, w, x := barycentricTetrahedron(s.Verts[0].W, s.Verts[1].W, s.Verts[2].W, s.Verts[3].W, p)
		w1 = s.Verts[0].W1.Mul(u).Add(s.Verts[1].W1.Mul(v)).Add(s.Verts[2].W1.Mul(w)).Add(s.Verts[3].W1.Mul(x))
		w2 = s.Verts[0].W2.Mul(u).Add(s.Verts[1].W2.Mul(v)).Add(s.Verts[2].W2.Mul(w)).Add(s.Verts[3].W2.Mul(x))
		return w1, w2
	default:
		return r3.Vector{}, r3.Vector{}
	}
}

func lerp(a, b r3.Vector, t float64) r3.Vector {
	return a.Add(b.Sub(a).Mul(t))
}

func barycentricSegment(a, b, p r3.Vector) float64 {
	ab := b.Sub(a)
	denom := ab.Norm2()
	if denom < 1e-20 {
		return 0
	}
	return p.Sub(a).Dot(ab) / denom
}

func barycentricTriangle(a, b, c, p r3.Vector) (u, v, w float64) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	if denom < 1e-20 {
		return 1, 0, 0
	}
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1 - v - w
	return u, v, w
}

func barycentricTetrahedron(a, b, c, d, p r3.Vector) (u, v, w, x float64) {
	vap := p.Sub(a)
	vbp := p.Sub(b)

	vab := b.Sub(a)
	vac := c.Sub(a)
	vad := d.Sub(a)
	vbc := c.Sub(b)
	vbd := d.Sub(b)

	va6 := vbp.Cross(vbd).Dot(vbc)
	vb6 := vap.Cross(vac).Dot(vad)
	vc6 := vap.Cross(vad).Dot(vab)
	v6 := 1.0 / vab.Cross(vac).Dot(vad)

	u = va6 * v6
	v = vb6 * v6
	w = vc6 * v6
	x = 1 - u - v - w
	return u, v, w, x
}
