package epa

import (
	"container/heap"

	"github.com/golang/geo/r3"

	"go.viam.com/collide/gjk"
)

// face is a single triangular face of the expanding polytope: three
// vertex indices, an outward unit normal, and the face's plane distance
// from the origin (non-negative once the polytope encloses the origin).
type face struct {
	a, b, c  int
	normal   r3.Vector
	dist     float64
	obsolete bool
}

// polytope is EPA's working hull: a vertex list seeded from GJK's
// terminal simplex, plus a face list expanded one supporting point at a
// time, with a min-heap keeping the closest (not-yet-obsolete) face ready
// to pop in O(log n).
type polytope struct {
	verts []gjk.Vertex
	faces []*face
	pq    faceHeap
}

func newPolytope() *polytope {
	return &polytope{pq: make(faceHeap, 0, 32)}
}

func (p *polytope) addVertex(v gjk.Vertex) int {
	p.verts = append(p.verts, v)
	return len(p.verts) - 1
}

// addFace computes the outward normal and plane distance for triangle
// (a,b,c) and pushes it onto the heap. Orientation is fixed by flipping
// the normal if it does not point away from innerPoint, a point known to
// be inside the hull (the centroid of the polytope's vertices at the time
// the face is added).
func (p *polytope) addFace(a, b, c int, innerPoint r3.Vector) *face {
	va, vb, vc := p.verts[a].W, p.verts[b].W, p.verts[c].W
	n := vb.Sub(va).Cross(vc.Sub(va))
	norm := n.Norm()
	if norm < 1e-12 {
		return nil
	}
	n = n.Mul(1 / norm)
	if n.Dot(va.Sub(innerPoint)) < 0 {
		a, b = b, a
		n = n.Mul(-1)
	}
	f := &face{a: a, b: b, c: c, normal: n, dist: n.Dot(va)}
	p.faces = append(p.faces, f)
	heap.Push(&p.pq, &faceHeapEntry{faceID: len(p.faces) - 1, dist: f.dist})
	return f
}

// popClosest pops the closest non-obsolete face, skipping any stale
// entries left behind by horizon rebuilds.
func (p *polytope) popClosest() (*face, int, bool) {
	for p.pq.Len() > 0 {
		entry := heap.Pop(&p.pq).(*faceHeapEntry)
		f := p.faces[entry.faceID]
		if f.obsolete {
			continue
		}
		return f, entry.faceID, true
	}
	return nil, -1, false
}

// edge identifies a directed edge of a face by vertex index pair.
type edge struct{ from, to int }

// expand removes all faces visible from the new support point w (with
// witnesses w1, w2), walks their boundary to find the horizon — the loop
// of edges shared by exactly one visible face — and fans new faces from
// the horizon to the new vertex.
func (p *polytope) expand(removedFaceID int, w gjk.Vertex) bool {
	newIdx := p.addVertex(w)
	newPoint := w.W

	visible := map[int]bool{removedFaceID: true}
	p.faces[removedFaceID].obsolete = true

	// Flood-fill adjacent faces that are also visible from newPoint.
	changed := true
	for changed {
		changed = false
		for i, f := range p.faces {
			if f.obsolete || visible[i] {
				continue
			}
			if f.normal.Dot(newPoint.Sub(p.verts[f.a].W)) > 1e-10 {
				if p.sharesEdgeWithVisible(i, visible) {
					visible[i] = true
					f.obsolete = true
					changed = true
				}
			}
		}
	}

	horizon := p.horizonEdges(visible)
	if len(horizon) == 0 {
		return false
	}

	centroid := p.centroid()
	for _, e := range horizon {
		if p.addFace(e.from, e.to, newIdx, centroid) == nil {
			return false
		}
	}
	return true
}

func (p *polytope) sharesEdgeWithVisible(faceIdx int, visible map[int]bool) bool {
	f := p.faces[faceIdx]
	edges := [][2]int{{f.a, f.b}, {f.b, f.c}, {f.c, f.a}}
	for i, other := range p.faces {
		if i == faceIdx || !visible[i] {
			continue
		}
		oEdges := [][2]int{{other.a, other.b}, {other.b, other.c}, {other.c, other.a}}
		for _, e1 := range edges {
			for _, e2 := range oEdges {
				if (e1[0] == e2[1] && e1[1] == e2[0]) || (e1[0] == e2[0] && e1[1] == e2[1]) {
					return true
				}
			}
		}
	}
	return false
}

// horizonEdges returns the directed edges of the visible-set faces that
// are not shared with another visible face — the boundary loop the new
// vertex fans out to.
func (p *polytope) horizonEdges(visible map[int]bool) []edge {
	counts := map[edge]int{}
	order := []edge{}
	for i := range visible {
		f := p.faces[i]
		for _, e := range [][2]int{{f.a, f.b}, {f.b, f.c}, {f.c, f.a}} {
			fwd := edge{e[0], e[1]}
			rev := edge{e[1], e[0]}
			if counts[rev] > 0 {
				counts[rev]--
				continue
			}
			if counts[fwd] == 0 {
				order = append(order, fwd)
			}
			counts[fwd]++
		}
	}
	horizon := make([]edge, 0, len(order))
	for _, e := range order {
		if counts[e] == 1 {
			horizon = append(horizon, e)
		}
	}
	return horizon
}

// hasVertex reports whether w duplicates an existing polytope vertex to
// within numerical tolerance: the support function found no new
// information, so expansion cannot proceed even though the hull itself is
// not degenerate.
func (p *polytope) hasVertex(w r3.Vector) bool {
	for _, v := range p.verts {
		if v.W.Sub(w).Norm2() < 1e-18 {
			return true
		}
	}
	return false
}

func (p *polytope) centroid() r3.Vector {
	var c r3.Vector
	for _, v := range p.verts {
		c = c.Add(v.W)
	}
	if len(p.verts) == 0 {
		return c
	}
	return c.Mul(1 / float64(len(p.verts)))
}
