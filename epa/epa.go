// Package epa implements the Expanding Polytope Algorithm: given a
// tetrahedron from a GJK run that enclosed the origin, it grows the
// polytope toward the origin's boundary to recover a penetration depth,
// contact normal and witness points.
package epa

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/gjk"
	"go.viam.com/collide/minkowski"
)

// Config tunes a single Solve call, including the capacity caps
// original_source/'s EPA_DEFAULT_MAX_FACES / EPA_DEFAULT_MAX_VERTICES
// pre-reserve storage for.
type Config struct {
	MaxIterations int
	MaxFaces      int
	MaxVertices   int
	Tolerance     float64
}

// DefaultConfig mirrors the numeric defaults original_source/'s
// narrowphase_defaults.h ships for EPA's polytope cache: half of GJK's
// iteration budget, since each EPA iteration expands a polytope rather
// than just refining a simplex.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 64,
		MaxFaces:      256,
		MaxVertices:   128,
		Tolerance:     1e-6,
	}
}

// Result is EPA's terminal state.
type Result struct {
	Status           Status
	PenetrationDepth float64
	Normal           r3.Vector
	Witness1         r3.Vector
	Witness2         r3.Vector
	Iterations       int
}

// Solve expands the polytope seeded from seed (GJK's terminal 4-vertex
// simplex, which must have enclosed the origin) against adapter's
// combined support function, returning the face closest to the origin
// (the minimum-penetration face) found within Config's caps.
func Solve(adapter *minkowski.Adapter, seed gjk.Simplex, cfg Config) *Result {
	if seed.Count != 4 {
		return &Result{Status: NonConvex}
	}

	p := newPolytope()
	for i := 0; i < 4; i++ {
		p.addVertex(seed.Verts[i])
	}
	centroid := p.centroid()

	faceIdx := [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}
	validFaces := 0
	for _, fi := range faceIdx {
		if f := p.addFace(fi[0], fi[1], fi[2], centroid); f != nil {
			validFaces++
		}
	}
	if validFaces < 4 {
		return &Result{Status: InvalidHull}
	}

	iter := 0
	for ; iter < cfg.MaxIterations; iter++ {
		if len(p.faces) > cfg.MaxFaces {
			return bestEffort(p, OutOfFaces, iter)
		}
		if len(p.verts) > cfg.MaxVertices {
			return bestEffort(p, OutOfVertices, iter)
		}

		f, fID, ok := p.popClosest()
		if !ok {
			return bestEffort(p, Failed, iter)
		}

		w, w1, w2 := adapter.Support(f.normal)

		supportDist := w.Dot(f.normal)
		if supportDist-f.dist <= cfg.Tolerance {
			return faceResult(p, f, Valid, iter)
		}
		if p.hasVertex(w) {
			// The support function found no new point to expand toward:
			// the closest face is as accurate as this polytope can get,
			// short of the exact tolerance bound above.
			return faceResult(p, f, AccuracyReached, iter)
		}

		if !p.expand(fID, gjk.Vertex{W: w, W1: w1, W2: w2}) {
			return faceResult(p, f, Degenerated, iter)
		}
	}

	f, _, ok := p.popClosest()
	if !ok {
		return &Result{Status: Failed, Iterations: iter}
	}
	return faceResult(p, f, OutOfFaces, iter)
}

func bestEffort(p *polytope, status Status, iter int) *Result {
	best, _, ok := p.popClosest()
	if !ok {
		return &Result{Status: Failed, Iterations: iter}
	}
	return faceResult(p, best, status, iter)
}

func faceResult(p *polytope, f *face, status Status, iter int) *Result {
	va, vb, vc := p.verts[f.a], p.verts[f.b], p.verts[f.c]
	proj := f.normal.Mul(f.dist)
	u, v, w := barycentric(va.W, vb.W, vc.W, proj)

	w1 := va.W1.Mul(u).Add(vb.W1.Mul(v)).Add(vc.W1.Mul(w))
	w2 := va.W2.Mul(u).Add(vb.W2.Mul(v)).Add(vc.W2.Mul(w))

	return &Result{
		Status:           status,
		PenetrationDepth: math.Abs(f.dist),
		Normal:           f.normal,
		Witness1:         w1,
		Witness2:         w2,
		Iterations:       iter,
	}
}

func barycentric(a, b, c, p r3.Vector) (u, v, w float64) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	if math.Abs(denom) < 1e-20 {
		return 1, 0, 0
	}
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1 - v - w
	return u, v, w
}
