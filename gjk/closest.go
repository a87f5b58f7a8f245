package gjk

import "github.com/golang/geo/r3"

// closestOnSegment finds the point on segment [a,b] closest to the origin
// and returns the reduced simplex (1 or 2 vertices) supporting it, via
// Ericson's "Real-Time Collision Detection" Voronoi-region method.
func closestOnSegment(a, b Vertex) (Simplex, r3.Vector) {
	ab := b.W.Sub(a.W)
	t := -a.W.Dot(ab)
	if t <= 0 {
		var s Simplex
		s.Add(a)
		return s, a.W
	}
	denom := ab.Norm2()
	if t >= denom {
		var s Simplex
		s.Add(b)
		return s, b.W
	}
	t /= denom
	closest := a.W.Add(ab.Mul(t))
	var s Simplex
	s.Add(a)
	s.Add(b)
	return s, closest
}

// closestOnTriangle finds the point on triangle (a,b,c) closest to the
// origin and returns the reduced simplex (1, 2 or 3 vertices) supporting
// it.
func closestOnTriangle(a, b, c Vertex) (Simplex, r3.Vector) {
	ab := b.W.Sub(a.W)
	ac := c.W.Sub(a.W)
	ap := a.W.Mul(-1)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		var s Simplex
		s.Add(a)
		return s, a.W
	}

	bp := b.W.Mul(-1)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		var s Simplex
		s.Add(b)
		return s, b.W
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		var s Simplex
		s.Add(a)
		s.Add(b)
		return s, a.W.Add(ab.Mul(v))
	}

	cp := c.W.Mul(-1)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		var s Simplex
		s.Add(c)
		return s, c.W
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		var s Simplex
		s.Add(a)
		s.Add(c)
		return s, a.W.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		var s Simplex
		s.Add(b)
		s.Add(c)
		return s, b.W.Add(c.W.Sub(b.W).Mul(w))
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	var s Simplex
	s.Add(a)
	s.Add(b)
	s.Add(c)
	return s, a.W.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// originInTetrahedron reports whether the origin lies inside (or on the
// boundary of) tetrahedron (a,b,c,d), the GJK collision termination test.
func originInTetrahedron(a, b, c, d Vertex) bool {
	faces := [4][3]r3.Vector{
		{a.W, b.W, c.W},
		{a.W, b.W, d.W},
		{a.W, c.W, d.W},
		{b.W, c.W, d.W},
	}
	opposite := [4]r3.Vector{d.W, c.W, b.W, a.W}
	for i, f := range faces {
		n := f[1].Sub(f[0]).Cross(f[2].Sub(f[0]))
		// Orient n away from the opposite vertex.
		if n.Dot(opposite[i].Sub(f[0])) > 0 {
			n = n.Mul(-1)
		}
		if n.Dot(f[0].Mul(-1)) < 0 {
			return false
		}
	}
	return true
}

// closestOnTetrahedron finds the point on tetrahedron (a,b,c,d) closest to
// the origin, testing each face and falling back to the interior (origin
// enclosed) case.
func closestOnTetrahedron(a, b, c, d Vertex) (Simplex, r3.Vector, bool) {
	if originInTetrahedron(a, b, c, d) {
		var s Simplex
		s.Add(a)
		s.Add(b)
		s.Add(c)
		s.Add(d)
		return s, r3.Vector{}, true
	}

	faces := [4][3]Vertex{
		{a, b, c},
		{a, b, d},
		{a, c, d},
		{b, c, d},
	}

	bestDist := -1.0
	var bestSimplex Simplex
	var bestPoint r3.Vector
	for _, f := range faces {
		s, p := closestOnTriangle(f[0], f[1], f[2])
		dist := p.Norm2()
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestSimplex = s
			bestPoint = p
		}
	}
	return bestSimplex, bestPoint, false
}
